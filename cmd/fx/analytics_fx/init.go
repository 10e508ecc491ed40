package analytics_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/logger"
)

var Module = fx.Provide(
	provideDashboardRepo, provideAnalyticsService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideAnalyticsService(repo repositories.DashboardRepository, log *logger.Logger) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(repo, log.With("service", "AnalyticsService"))
}
