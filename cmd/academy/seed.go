package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the static catalog",
	Long:  "Insert categories, programs, tracks, team members and testimonials. Rows that already exist are left untouched.",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	res, err := bootstrap.SeedCatalog(context.Background(), database, lgr)
	fmt.Fprintf(cmd.OutOrStdout(), "created: %d categories, %d programs, %d tracks, %d team members, %d testimonials\n",
		res.Categories, res.Programs, res.Tracks, res.TeamMembers, res.Testimonials)
	return err
}
