package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"BitSense/internal/di"
	"BitSense/internal/ui"
	"BitSense/pkg/config"
)

func newDashboardCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the interactive terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			// The TUI owns the terminal; console logging would corrupt it.
			if cfg.Logging.Output == "stdout" || cfg.Logging.Output == "stderr" {
				cfg.Logging.Output = "bitsense.log"
			}

			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			app.SetDashboard(ui.NewDashboard(app.Refresher(), app.Logger()))

			return app.Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	return cmd
}
