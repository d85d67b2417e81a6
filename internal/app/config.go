package service

import (
	"github.com/okian/heropick/internal/config"
	"github.com/okian/heropick/internal/domain/scoring"
	"github.com/okian/heropick/pkg/logger"
)

// OptionsFromConfig maps a loaded configuration onto service options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithPaths(cfg.CatalogPath, cfg.PoolPath, cfg.MatchupsPath),
		WithDBPath(cfg.DBPath),
		WithWatch(cfg.WatchData, cfg.WatchDebounce),
		WithDesiredRoles(cfg.DesiredRoles),
		WithComfortMultipliers(cfg.ComfortMultipliers),
		WithWeights(scoring.Weights{
			Role:        cfg.WeightRole,
			Synergy:     cfg.WeightSynergy,
			Counter:     cfg.WeightCounter,
			CounteredBy: cfg.WeightCounteredBy,
		}),
		WithMatchups(cfg.UseMatchups),
		WithParallelism(cfg.ScoringParallelism),
		WithCacheSize(cfg.CacheSize),
		WithTopN(cfg.DefaultTopN, cfg.MaxTopN),
		WithLogger(logger.Get().Named("service")),
	}
}
