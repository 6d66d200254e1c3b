// internal/cli/fetch.go
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/engine/batch"
	"github.com/law-makers/results/internal/reqctx"
	"github.com/law-makers/results/internal/ui"
	"github.com/law-makers/results/internal/utils/output"
	"github.com/law-makers/results/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	fetchFrom    string
	fetchTo      string
	fetchOutput  string
	fetchHeaders []string
	fetchNoTable bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch --from <htno> --to <htno>",
	Short: "Fetch results for a range of hall ticket numbers",
	Long: `Looks up every hall ticket number from --from to --to, one at a time and in
ascending order. Unknown numbers are kept in the list and the walk continues.

Any other failure stops the range. Whatever was gathered before it is still
printed and exported, and the failing number is reported so the range can be
resumed from there.`,
	Example: `  # Fetch a section and export it to Excel
  results fetch --from 123456789001 --to 123456789060 -o section.xlsx

  # Printable PDF of the same range
  results fetch --from 123456789001 --to 123456789060 -o section.pdf`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "First hall ticket number (12 digits)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "Last hall ticket number (12 digits)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Export file, format chosen by extension "+exportFormats())
	fetchCmd.Flags().StringArrayVarP(&fetchHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"Referer: https://...\")")
	fetchCmd.Flags().BoolVar(&fetchNoTable, "no-table", false, "Do not print the summary table")
	_ = fetchCmd.MarkFlagRequired("from")
	_ = fetchCmd.MarkFlagRequired("to")
}

func runFetch(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	req := models.RangeRequest{URL: a.Config.ResultsURL, From: fetchFrom, To: fetchTo}
	rolls, err := a.Ranges.Plan(req)
	if err != nil {
		return err
	}

	ctx := reqctx.WithRequestContext(cmd.Context())
	bar := progressbar.NewOptions(len(rolls),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Fetching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)

	records, rangeErr := a.Ranges.ScrapeRange(ctx, req, func(done, total int, rec models.StudentRecord) {
		bar.Describe(rec.HallTicket)
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	reqctx.Logger(ctx).Info().
		Int("records", len(records)).
		Int("planned", len(rolls)).
		Dur("elapsed", reqctx.Elapsed(ctx)).
		Msg("Range finished")

	if !fetchNoTable && len(records) > 0 {
		printSummary(os.Stdout, records)
	}

	if fetchOutput != "" && len(records) > 0 {
		if err := output.Save(records, fetchOutput); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		log.Info().Str("file", fetchOutput).Int("records", len(records)).Msg("Output saved")
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.Success("Saved to"), fetchOutput)
	}

	var re *batch.RangeError
	if errors.As(rangeErr, &re) {
		fmt.Fprintf(os.Stderr, "%s stopped at %s after %d record(s): %s\n",
			ui.Code(string(engine.CodeOf(re.Err))), re.HallTicket, len(records), engine.MessageOf(re.Err))
		fmt.Fprintf(os.Stderr, "%s\n", ui.Info(fmt.Sprintf("Resume with --from %s --to %s", re.HallTicket, fetchTo)))
		return fmt.Errorf("range halted at %s", re.HallTicket)
	}
	return rangeErr
}
