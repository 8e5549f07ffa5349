package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"minnetherapy/internal/app"
	"minnetherapy/internal/platform/postgres"
)

var errNoDatabase = errors.New("no database url: set DATABASE_URL or --database-url")

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded directory schema",
		Long: `Migrate applies the embedded schema. Every statement is idempotent, so
running it against an up-to-date database is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}

			ctx := cmd.Context()
			stores, err := app.OpenPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := postgres.Migrate(ctx, stores.DB()); err != nil {
				return err
			}
			log.InfoContext(ctx, "schema applied")
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}
