package mail_fx

import (
	"go.uber.org/fx"

	"yatra/internal/services"
	"yatra/pkg/config"
	"yatra/pkg/logger"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config, log *logger.Logger) services.IMailService {
	return services.NewMailService(cfg, log.With("service", "MailService"))
}
