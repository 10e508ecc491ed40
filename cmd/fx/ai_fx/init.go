package ai_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/planner"
	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/config"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

var Module = fx.Provide(
	provideAIClient,
	provideEngine,
	provideEmbeddingRepo,
	provideEmbeddedService)

func provideAIClient(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) (utils.AIClientInterface, error) {
	client, err := utils.NewAIClient(cfg.AI)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Warn("no AI provider configured, itineraries use the basic planner and chat escalates to agents")
		return nil, nil
	}
	log.Info("AI provider ready", "provider", client.Provider(), "model", client.Model())
	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

// A nil client converts to a nil Generator and EmbeddingClientInterface,
// which select the basic planner and hash embeddings.
func provideEngine(client utils.AIClientInterface, log *logger.Logger) *planner.Engine {
	return planner.NewEngine(client, log.With("service", "Planner"))
}

func provideEmbeddingRepo(db *gorm.DB) repositories.IDestinationEmbeddingRepository {
	return repositories.NewDestinationEmbeddingRepository(db)
}

func provideEmbeddedService(repo repositories.IDestinationEmbeddingRepository, client utils.AIClientInterface, log *logger.Logger) services.EmbededServiceInterface {
	return services.NewEmbededService(repo, client, log.With("service", "EmbededService"))
}
