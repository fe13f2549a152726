package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/config"
)

var validateFlags struct {
	file string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and documents",
	Long: `Validate the configuration file, and optionally a document file.

Examples:
  # Validate the configuration
  crptgate validate

  # Validate a document as well
  crptgate validate --file doc.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "document JSON file to validate")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadConfigWithEnvOverrides(cfgFile); err != nil {
		return cli.NewConfigError("", err.Error())
	}
	fmt.Printf("Configuration valid: %s\n", cfgFile)

	if validateFlags.file != "" {
		doc, err := readDocument(validateFlags.file)
		if err != nil {
			return cli.NewCommandError("validate", err)
		}
		if err := doc.Validate(); err != nil {
			return cli.NewCommandError("validate", err)
		}
		fmt.Printf("Document valid: %s\n", validateFlags.file)
	}

	return nil
}
