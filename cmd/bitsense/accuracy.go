package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"BitSense/internal/service/predictapi"
	"BitSense/pkg/config"
	"BitSense/pkg/logger"
)

func newAccuracyCmd() *cobra.Command {
	var (
		configPath string
		modelType  string
		days       int
	)

	cmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Show graded prediction accuracy per model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}

			client := predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Nop())
			ctx := context.Background()
			featureSets := []string{"vader", "finbert"}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tGRADED\tCORRECT\tACCURACY\tUP ACC\tDOWN ACC\tAVG CONF")
			for _, fs := range featureSets {
				res := client.ModelAccuracy(ctx, fs, modelType, days)
				s := res.Payload.AccuracyStats
				name := fs
				if res.IsGolden() {
					name += " (sample)"
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
					name, s.TotalPredictions, s.CorrectPredictions,
					pct(s.Accuracy), pct(s.UpAccuracy), pct(s.DownAccuracy), pct(s.AvgConfidence))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, fs := range featureSets {
				res := client.DailyAccuracy(ctx, fs, modelType, days)
				label := fs
				if res.IsGolden() {
					label += " (sample)"
				}
				fmt.Printf("\n%s daily\n", label)

				dw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(dw, "DATE\tPREDICTIONS\tCORRECT\tACCURACY")
				for _, p := range res.Payload.DailyAccuracy {
					fmt.Fprintf(dw, "%s\t%d\t%d\t%s\n", p.Date, p.Predictions, p.Correct, pct(p.Accuracy))
				}
				if err := dw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")
	cmd.Flags().StringVar(&modelType, "model-type", "random_forest", "model type to report on")
	cmd.Flags().IntVar(&days, "days", 7, "grading window in days")
	return cmd
}

// pct renders a 0..1 fraction as a percentage, "-" when ungraded.
func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
