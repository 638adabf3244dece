// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "chatop-api",
		Short: "ChaTop API is the rental listing and messaging backend",
		Long: `ChaTop API is the backend of the ChaTop rental portal.
Owners publish rentals with pictures, tenants contact them through messages.
Every endpoint except registration and login is protected by a bearer token.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory holding main.toml")
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
