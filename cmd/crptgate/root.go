package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "crptgate",
	Short: "Rate-limited submission gateway for the CRPT marking API",
	Long: `Crptgate submits goods-commissioning documents to the CRPT (Chestny ZNAK)
API while enforcing a client-side request rate.

Every submission passes through a sliding-window rate limiter that blocks
until the request can be sent without exceeding the configured limit, so
the gateway never triggers server-side throttling on its own.

It provides:
  - Blocking sliding-window rate limiting (cap N requests per window)
  - JSON, CSV, and XML document rendering with detached signatures
  - A persistent journal of submission outcomes
  - An offline spool with a background submission worker`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
