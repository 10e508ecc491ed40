package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/config"
	"yatra/pkg/logger"
	mem "yatra/pkg/memcache"
	"yatra/pkg/middleware"
	"yatra/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWT, provideAuth)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWT(cfg config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
}

func provideAuth(jwt *utils.JWTManager, revoked *mem.RevokedTokens, accountRepo repositories.AccountRepository) *middleware.Auth {
	return middleware.NewAuth(jwt, revoked, accountRepo)
}

func provideAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, revoked *mem.RevokedTokens, log *logger.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, revoked, log.With("service", "AccountService"))
}
