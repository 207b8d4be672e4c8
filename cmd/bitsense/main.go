package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "bitsense",
		Short:   "Resilient terminal client for the Bitcoin sentiment prediction API",
		Version: version,
	}

	root.AddCommand(
		newDashboardCmd(),
		newServeCmd(),
		newHealthCmd(),
		newPredictCmd(),
		newRetrainCmd(),
		newAccuracyCmd(),
		newSnapshotCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
