package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/estate-listings/internal/config"
	dbpkg "github.com/BruksfildServices01/estate-listings/internal/db"
	infraRepo "github.com/BruksfildServices01/estate-listings/internal/infra/repository"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Upsert properties from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.AppEnv)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}

			res, err := seed(cmd.Context(), f, infraRepo.NewPropertyGormRepository(db), log)
			if err != nil {
				return err
			}

			log.Info().
				Int("found", res.Found).
				Int("seeded", res.Seeded).
				Int("skipped", res.Skipped).
				Msg("seeding completed")
			return nil
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
