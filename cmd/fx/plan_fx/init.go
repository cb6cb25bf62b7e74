package plan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitplan/internal/api/controllers"
	"fitplan/internal/realtime"
	"fitplan/internal/repositories"
	"fitplan/internal/services"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlanRepository,
	ProvidePlanModelClient,
	ProvidePlanValidator,
	ProvidePlanService,
	ProvidePlanController,
)

func ProvidePlanRepository(db *gorm.DB) repositories.PlanRepositoryInterface {
	return repositories.NewPlanRepository(db)
}

func ProvidePlanModelClient() (utils.PlanModelClient, error) {
	return utils.NewPlanModelClient()
}

func ProvidePlanValidator(log *logger.Logger) *services.PlanValidator {
	return services.NewPlanValidator(log)
}

func ProvidePlanService(
	userRepo repositories.UserRepositoryInterface,
	planRepo repositories.PlanRepositoryInterface,
	modelClient utils.PlanModelClient,
	validator *services.PlanValidator,
	videoService services.VideoServiceInterface,
	bus realtime.Bus,
	log *logger.Logger,
) services.PlanServiceInterface {
	return services.NewPlanService(userRepo, planRepo, modelClient, validator, videoService, bus, log)
}

func ProvidePlanController(planService services.PlanServiceInterface, enqueuer services.PlanEnqueuer) *controllers.PlanController {
	return controllers.NewPlanController(planService, enqueuer)
}
