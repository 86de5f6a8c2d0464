package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/app/migrations"
	"github.com/tadreeb/academy/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply the SQL migrations compiled into the binary. Already applied files are skipped.",
	RunE:  runMigrate,
}

var migrateList bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "List the embedded migrations without applying them")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrateList {
		all, err := migrations.Embedded()
		if err != nil {
			return fmt.Errorf("failed to read migrations: %w", err)
		}
		for _, m := range all {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Version, m.Name)
		}
		return nil
	}

	cfg, lgr, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(context.Background(), database, lgr)
}
