package profile_fx

import (
	"go.uber.org/fx"

	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/logger"
)

var Module = fx.Provide(provideProfileService)

func provideProfileService(
	accounts repositories.AccountRepository,
	destinations repositories.DestinationRepository,
	embedded services.EmbededServiceInterface,
	log *logger.Logger,
) services.ProfileServiceInterface {
	return services.NewProfileService(accounts, destinations, embedded, log.With("service", "ProfileService"))
}
