package mail_fx

import (
	"go.uber.org/fx"

	"fitplan/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() (services.IMailService, error) {
	return services.NewSMTPMailService(services.SMTPConfigFromEnv())
}
