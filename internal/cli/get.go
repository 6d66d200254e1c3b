// internal/cli/get.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/law-makers/results/internal/utils/output"
	"github.com/law-makers/results/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	getOutput  string
	getFormat  string
	getHeaders []string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <htno>",
	Short: "Look up the result of one hall ticket number",
	Long: `Submits one 12-digit hall ticket number to the results portal and prints
the student details, subject marks and the latest semester summary.

A hall ticket number the portal does not know is reported, not treated as an error.`,
	Example: `  # Print a result as tables
  results get 123456789012 --url https://results.example.edu/results.php

  # Print the raw record as JSON
  results get 123456789012 --format json

  # Save the record to a spreadsheet
  results get 123456789012 -o result.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "File path to save the record (.xlsx, .csv, .pdf, .json, .html, .md)")
	getCmd.Flags().StringVarP(&getFormat, "format", "f", "table", "Output format for stdout: table or json")
	getCmd.Flags().StringArrayVarP(&getHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"Referer: https://...\")")
}

func runGet(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	format := strings.ToLower(getFormat)
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid format: %s (must be table or json)", getFormat)
	}

	req := models.LookupRequest{URL: a.Config.ResultsURL, HTNo: args[0]}
	log.Debug().Str("htno", req.HTNo).Str("url", req.URL).Msg("Looking up hall ticket")

	rec, err := a.Looker.Lookup(cmd.Context(), req)
	if err != nil {
		return err
	}

	if getOutput != "" {
		if err := output.Save([]models.StudentRecord{*rec}, getOutput); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		log.Info().Str("file", getOutput).Msg("Output saved")
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	printRecord(os.Stdout, rec)
	return nil
}
