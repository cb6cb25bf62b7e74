package queue_fx

import (
	"context"

	"go.uber.org/fx"

	"fitplan/internal/services"
	"fitplan/internal/tasks"
	"fitplan/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		ProvideEnqueuer,
		ProvideWorker,
	),
	fx.Invoke(runWorker),
)

func ProvideEnqueuer() services.PlanEnqueuer {
	return tasks.NewEnqueuer()
}

func ProvideWorker(planService services.PlanServiceInterface, log *logger.Logger) *tasks.Worker {
	return tasks.NewWorker(planService, log)
}

func runWorker(lc fx.Lifecycle, worker *tasks.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return worker.Start()
		},
		OnStop: func(ctx context.Context) error {
			worker.Shutdown()
			return nil
		},
	})
}
