// Package cli implements directoryctl, the operator tool for schema and seed
// data.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"minnetherapy/internal/platform/config"
	"minnetherapy/internal/platform/logger"
)

type rootOptions struct {
	databaseURL string
	logLevel    string
}

// NewRootCommand builds the directoryctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "directoryctl",
		Short: "Operate the MinneTherapy directory database",
		Long: `directoryctl applies the directory schema and loads the Minnesota seed
directory (specializations, provider accounts, profiles and weekly hours).

Connection settings come from the same environment and config file as the
server (DATABASE_URL, DIRECTORY_CONFIG); --database-url overrides both.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "postgres connection url (default: DATABASE_URL)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newSeedCommand(opts))
	return root
}

// Execute runs directoryctl until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// resolve merges flags over the loaded server config.
func (o *rootOptions) resolve(cmd *cobra.Command) (config.Server, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Server{}, nil, fmt.Errorf("load config: %w", err)
	}
	if o.databaseURL != "" {
		cfg.DatabaseURL = o.databaseURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel), nil
}
