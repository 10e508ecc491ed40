package destination_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/logger"
)

var Module = fx.Provide(
	provideDestinationRepo, provideDestinationService)

func provideDestinationRepo(db *gorm.DB) repositories.DestinationRepository {
	return repositories.NewDestinationRepository(db)
}

func provideDestinationService(repo repositories.DestinationRepository, embedded services.EmbededServiceInterface, log *logger.Logger) services.DestinationServiceInterface {
	return services.NewDestinationService(repo, embedded, log.With("service", "DestinationService"))
}
