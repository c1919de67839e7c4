package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/seed"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		ctx := context.Background()
		if seedReset {
			if err := seed.Reset(ctx, db); err != nil {
				return err
			}
		} else if err := seed.Load(ctx, db); err != nil {
			return err
		}

		log.Println("seed complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "drop existing data before seeding")
}
