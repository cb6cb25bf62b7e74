package notify_fx

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"fitplan/internal/api/controllers"
	"fitplan/internal/realtime"
	"fitplan/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		ProvideBus,
		ProvideHub,
		ProvideWSController,
	),
	fx.Invoke(startForwarder),
)

func ProvideBus(rdb *goredis.Client, log *logger.Logger) realtime.Bus {
	return realtime.NewRedisBus(rdb, log)
}

func ProvideHub(log *logger.Logger) *realtime.Hub {
	return realtime.NewHub(log)
}

func ProvideWSController(hub *realtime.Hub, log *logger.Logger) *controllers.WSController {
	return controllers.NewWSController(hub, log)
}

// startForwarder subscribes to plan events for the lifetime of the app and
// fans them out to connected WebSocket clients.
func startForwarder(lc fx.Lifecycle, bus realtime.Bus, hub *realtime.Hub) {
	forwardCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bus.StartForwarder(forwardCtx, hub.Deliver)
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return bus.Close()
		},
	})
}
