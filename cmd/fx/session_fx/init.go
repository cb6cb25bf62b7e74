package session_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitplan/internal/api/controllers"
	"fitplan/internal/repositories"
	"fitplan/internal/services"
)

var Module = fx.Provide(
	ProvideSessionRepository,
	ProvideSessionService,
	ProvideSessionController,
)

func ProvideSessionRepository(db *gorm.DB) repositories.SessionRepositoryInterface {
	return repositories.NewSessionRepository(db)
}

func ProvideSessionService(sessionRepo repositories.SessionRepositoryInterface) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo)
}

func ProvideSessionController(sessionService services.SessionServiceInterface) *controllers.SessionController {
	return controllers.NewSessionController(sessionService)
}
