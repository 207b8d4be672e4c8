package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"BitSense/internal/domain/models"
	"BitSense/internal/service/predictapi"
	"BitSense/pkg/config"
	"BitSense/pkg/logger"
)

func newPredictCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Request a fresh dual prediction",
		Long: `Asks both models to score the current feature snapshot. This mutates
backend state (the prediction is recorded for later grading), so unlike
the board reads it fails instead of substituting sample data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			client := predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Nop())
			dual, err := client.PredictBoth(context.Background())
			if err != nil {
				return err
			}

			printModelResult("vader", dual.Vader)
			printModelResult("finbert", dual.Finbert)
			fmt.Printf("response time: %.0f ms\n", dual.Performance.TotalResponseTimeMs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	return cmd
}

func printModelResult(name string, r models.ModelResult) {
	p := r.Prediction
	fmt.Printf("%s (%s %s)\n", name, r.ModelInfo.ModelType, r.ModelInfo.ModelVersion)
	fmt.Printf("  direction:   %s\n", p.Direction)
	fmt.Printf("  probability: up %.1f%% / down %.1f%%\n", p.Probability.Up*100, p.Probability.Down*100)
	if p.Accuracy != nil {
		fmt.Printf("  accuracy:    %.1f%% (%s)\n", *p.Accuracy*100, p.AccuracyPeriod)
	} else {
		fmt.Printf("  accuracy:    not graded yet\n")
	}
}
