package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "deskwatchctl",
		Short: "CLI client for the deskwatch telemetry REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8000", "Telemetry service base URL")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search ingested usage records",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			return runSearch(apiFlag, query, os.Stdout)
		},
	}
	searchCmd.Flags().StringP("query", "q", "", "Search query text (required)")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Report service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
