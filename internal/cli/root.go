// Package cli implements matchctl, which scores profiles stored as JSON
// files without a database.
package cli

import (
	"context"
	"log/slog"

	"go-match-backend/config"

	"github.com/spf13/cobra"
)

type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// NewRootCmd builds the matchctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "matchctl",
		Short: "Score candidates against jobs from JSON files",
		Long: `matchctl computes candidate-job match scores offline. Profiles are read
from JSON files in the same shape the HTTP API accepts, and results are
written as JSON.`,
		SilenceUsage: true,
	}
	root.AddCommand(newScoreCmd(), newRankCmd(), newDecideCmd(), newWeightsCmd())
	return root
}

// Execute runs matchctl with cfg and log available to every subcommand.
func Execute(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, log)

	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return &config.Config{ScoringWorkers: 1, DefaultTopN: 10}
}

func getLoggerFromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}
