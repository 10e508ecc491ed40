package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/planner"
	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/config"
	"yatra/pkg/logger"
)

var Module = fx.Provide(
	provideItineraryRepo, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	itineraries repositories.ItineraryRepository,
	destinations repositories.DestinationRepository,
	accounts repositories.AccountRepository,
	engine *planner.Engine,
	cfg config.Config,
	log *logger.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraries, destinations, accounts, engine, cfg.FrontendURL, log.With("service", "ItineraryService"))
}
