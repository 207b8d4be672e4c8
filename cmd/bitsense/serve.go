package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"BitSense/internal/di"
	"BitSense/pkg/config"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run headless with the HTTP board server",
		Long: `Runs the refresher without the terminal UI and exposes the board over
HTTP and websocket. Useful for feeding other dashboards or for keeping
the local snapshot store warm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			// serve without the board surface would do nothing observable.
			cfg.Server.Enabled = true

			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}

			return app.Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	return cmd
}
