package cli

import (
	"github.com/carbonroute/carbonroute/internal/config"
	"github.com/carbonroute/carbonroute/internal/engine"
	"github.com/carbonroute/carbonroute/internal/factors"
)

// buildEngine assembles the calculation engine from configuration: the
// factor dataset (external file or embedded), a lookup cache, and a
// fresh strategy registry. The static provider is returned alongside the
// engine for commands that list the raw dataset.
func buildEngine(cfg *config.Config) (*engine.Engine, *factors.StaticProvider, error) {
	var (
		static *factors.StaticProvider
		err    error
	)

	if cfg.Factors.File != "" {
		static, err = factors.FromFile(cfg.Factors.File)
	} else {
		static, err = factors.Embedded()
	}
	if err != nil {
		return nil, nil, err
	}

	provider := factors.NewCachingProvider(static, cfg.Factors.CacheSize, cfg.Factors.CacheTTL)
	eng := engine.New(engine.NewRegistry(), provider)

	return eng, static, nil
}
