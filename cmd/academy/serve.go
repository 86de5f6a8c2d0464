package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the API server together with the SPA assets, uploads and the metrics endpoint.",
	RunE:  runServe,
}

var (
	servePort    string
	serveMigrate bool
	serveSeed    bool
)

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply pending migrations before serving")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Insert the static catalog before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if servePort != "" {
		cfg.Server.Port = servePort
	}

	srv, err := server.NewServer(cfg, lgr, server.Options{Migrate: serveMigrate, Seed: serveSeed})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	if err := srv.Run(); err != nil {
		lgr.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		return err
	}

	lgr.Info().Msg("Application finished gracefully.")
	return nil
}
