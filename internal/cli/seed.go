package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"minnetherapy/internal/app"
	"minnetherapy/internal/auth/secrets"
	"minnetherapy/internal/platform/postgres"
	"minnetherapy/internal/seed"
)

type seedOptions struct {
	randSeed   int64
	bcryptCost int
	migrate    bool
	dryRun     bool
}

func newSeedCommand(root *rootOptions) *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the Minnesota seed directory",
		Long: `Seed creates the 10 specializations and 15 verified providers with their
login accounts (password "password123") and Monday-Friday hours.

Existing rows are left untouched, so seeding twice is safe.

Example:
  directoryctl seed
  directoryctl seed --migrate --rand-seed 42
  directoryctl seed --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, root, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.randSeed, "rand-seed", 0, "fix the random source (0: time based)")
	cmd.Flags().IntVar(&opts.bcryptCost, "bcrypt-cost", secrets.DefaultCost, "bcrypt cost for seeded passwords")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply the schema before seeding")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "seed in-memory stores instead of the database")
	return cmd
}

func runSeed(cmd *cobra.Command, root *rootOptions, opts *seedOptions) error {
	cfg, log, err := root.resolve(cmd)
	if err != nil {
		return err
	}
	if opts.bcryptCost < bcrypt.MinCost || opts.bcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("--bcrypt-cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	ctx := cmd.Context()
	var stores *app.Stores
	if opts.dryRun {
		stores = app.NewInMemory()
	} else {
		if cfg.DatabaseURL == "" {
			return errNoDatabase
		}
		stores, err = app.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer stores.Close()
		if opts.migrate {
			if err := postgres.Migrate(ctx, stores.DB()); err != nil {
				return err
			}
		}
	}

	seedOpts := []seed.Option{seed.WithLogger(log), seed.WithBcryptCost(opts.bcryptCost)}
	if opts.randSeed != 0 {
		seedOpts = append(seedOpts, seed.WithRand(rand.New(rand.NewSource(opts.randSeed))))
	}
	report, err := stores.Seed(ctx, seedOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d specializations and %d providers (%s)\n",
		report.Specializations, report.Providers, stores.Backend)
	return nil
}
