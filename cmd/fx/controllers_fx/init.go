package controllers_fx

import (
	"go.uber.org/fx"

	"yatra/internal/api/controllers"
	"yatra/pkg/config"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewDestinationController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(provideHealthController))

func provideHealthController(cfg config.Config) *controllers.HealthController {
	return controllers.NewHealthController(cfg.Environment)
}
