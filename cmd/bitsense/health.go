package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"BitSense/internal/service/predictapi"
	"BitSense/pkg/config"
	"BitSense/pkg/logger"
)

func newHealthCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the prediction API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			client := predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Nop())
			h, err := client.Health(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("status:  %s\n", h.Status)
			fmt.Printf("time:    %s\n", h.Timestamp)
			fmt.Printf("models:  %s\n", strings.Join(h.LoadedModels, ", "))

			if !h.OK() {
				return fmt.Errorf("upstream unhealthy: %s", h.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	return cmd
}
