package main

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/bootstrap"
	"github.com/tadreeb/academy/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "academy",
	Short:         "Training academy backend",
	Long:          "academy serves the bilingual training catalog, public forms, the auth proxy and the back-office API.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	configFile string
	envFile    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", filepath.Join("configs", "config.yaml"), "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(sessionCmd)
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	return bootstrap.LoadConfigAndSetupLogger(configFile, envFile)
}
