package redis_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"yatra/internal/infra"
	"yatra/internal/realtime"
	"yatra/internal/support"
	"yatra/pkg/config"
	"yatra/pkg/logger"
)

var Module = fx.Provide(
	provideRedis,
	provideBus,
	provideConversationStore)

func provideRedis(cfg config.Config, log *logger.Logger) (*redis.Client, error) {
	return infra.NewRedisClient(cfg.Redis, log)
}

func provideBus(lc fx.Lifecycle, rdb *redis.Client, cfg config.Config, log *logger.Logger) realtime.Bus {
	if rdb == nil {
		return realtime.NewLocalBus()
	}
	bus := realtime.NewRedisBus(rdb, cfg.Redis.Channel, log)
	lc.Append(fx.StopHook(bus.Close))
	return bus
}

func provideConversationStore(rdb *redis.Client) support.ConversationStore {
	if rdb == nil {
		return support.NewMemoryConversationStore(support.ConversationTTL)
	}
	return support.NewRedisConversationStore(rdb, support.ConversationTTL)
}
