package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"BitSense/internal/domain/models"
	"BitSense/internal/service/predictapi"
	"BitSense/pkg/config"
	"BitSense/pkg/logger"
)

func newRetrainCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "retrain",
		Short: "Inspect and trigger model retraining",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether either model is due for retraining",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			client := predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Nop())
			res := client.RetrainStatus(context.Background())
			if res.IsGolden() {
				fmt.Println("upstream unreachable, showing sample data")
				fmt.Println()
			}

			printRetrainModel("vader", res.Payload.Status.Vader)
			printRetrainModel("finbert", res.Payload.Status.Finbert)
			return nil
		},
	}

	var (
		featureSet     string
		modelType      string
		deployIfBetter bool
	)
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Trigger a retraining job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			client := predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Nop())
			out, err := client.ExecuteRetrain(context.Background(), featureSet, modelType, deployIfBetter)
			if err != nil {
				return err
			}

			fmt.Printf("success: %t\n", out.Success)
			if len(out.Result) > 0 {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out.Result, "", "  "); err == nil {
					fmt.Println(buf.String())
				}
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&featureSet, "feature-set", "vader", "feature set to retrain (vader or finbert)")
	runCmd.Flags().StringVar(&modelType, "model-type", "", "model type (backend default when empty)")
	runCmd.Flags().BoolVar(&deployIfBetter, "deploy-if-better", false, "deploy the new model if it beats the current one")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	cmd.AddCommand(statusCmd, runCmd)
	return cmd
}

func printRetrainModel(name string, s models.RetrainModelStatus) {
	verdict := "ok"
	if s.ShouldRetrain {
		verdict = "due"
	}
	fmt.Printf("%s: %s (data %d/%d)\n", name, verdict, s.DataAvailable, s.DataRequired)
	if len(s.Reasons) > 0 {
		fmt.Printf("  reasons: %s\n", strings.Join(s.Reasons, "; "))
	}
}
