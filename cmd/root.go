package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/propsignal/market-cli/internal/cache"
	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/engine"
	"github.com/propsignal/market-cli/internal/provider"
	"github.com/propsignal/market-cli/internal/scoring"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "market-cli",
	Short: "City market scoring engine",
	Long:  "Fetches property listing samples, aggregates per-city market statistics, and ranks investment markets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if err := scoring.ValidateConfig(cfg.Scoring); err != nil {
			return fmt.Errorf("validate scoring config: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initEngine builds the engine with its provider client and cache store.
// The returned closer releases the cache database.
func initEngine(ctx context.Context) (*engine.Engine, func(), error) {
	client := provider.NewClient(cfg.Provider)

	var store cache.Store = cache.Noop{}
	if !cfg.Cache.Disabled {
		sqlite, err := cache.NewSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if err := sqlite.Migrate(ctx); err != nil {
			sqlite.Close()
			return nil, nil, fmt.Errorf("migrate cache: %w", err)
		}
		store = sqlite
	}

	eng := engine.New(cfg, client, store)
	return eng, func() { _ = store.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
