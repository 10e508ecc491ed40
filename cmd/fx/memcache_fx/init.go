package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"yatra/pkg/config"
	mem "yatra/pkg/memcache"
	"yatra/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(mem.NewRevokedTokens),
	fx.Provide(provideChatLimiter, provideGenerationLimiter),
	fx.Invoke(startSweeper))

// ChatLimiter throttles the public chat endpoints per client IP.
type ChatLimiter struct {
	*middleware.RateLimiter
}

func provideChatLimiter(cfg config.Config) ChatLimiter {
	return ChatLimiter{middleware.NewRateLimiter(cfg.Chat.RatePerMinute, time.Minute)}
}

// GenerationLimiter caps itinerary generations per client IP.
type GenerationLimiter struct {
	*middleware.RateLimiter
}

func provideGenerationLimiter(cfg config.Config) GenerationLimiter {
	return GenerationLimiter{middleware.NewRateLimiter(cfg.Itinerary.GenerationsPerHour, time.Hour)}
}

func startSweeper(lc fx.Lifecycle, revoked *mem.RevokedTokens, chat ChatLimiter, generation GenerationLimiter) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(5 * time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						revoked.Sweep()
						chat.Cleanup()
						generation.Cleanup()
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
