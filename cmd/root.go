package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scentlab/scent-cli/internal/config"
	"github.com/scentlab/scent-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "scent-cli",
	Short: "Perfume recommendation engine",
	Long:  "Scores a perfume catalog against questionnaire answers, manages favorites and curated vibes, and optionally layers LLM advisory text over the deterministic picks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// openStore opens the configured catalog store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
