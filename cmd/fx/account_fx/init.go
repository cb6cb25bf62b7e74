package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitplan/internal/api/controllers"
	"fitplan/internal/repositories"
	"fitplan/internal/services"
	"fitplan/pkg/logger"
	mem "fitplan/pkg/memcache"
)

var Module = fx.Provide(
	ProvideUserRepository,
	ProvideAccountService,
	ProvideAccountController,
)

func ProvideUserRepository(db *gorm.DB) repositories.UserRepositoryInterface {
	return repositories.NewUserRepository(db)
}

func ProvideAccountService(
	userRepo repositories.UserRepositoryInterface,
	resetTokens mem.ResetTokenStore,
	mailService services.IMailService,
	enqueuer services.PlanEnqueuer,
	log *logger.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, resetTokens, mailService, enqueuer, log)
}

func ProvideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
