package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"yatra/pkg/config"
	"yatra/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log.SugaredLogger.Desugar())
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}
