// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/results/internal/app"
	"github.com/law-makers/results/internal/config"
	"github.com/law-makers/results/internal/ui"
	headersutil "github.com/law-makers/results/internal/utils/headers"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "results",
	Short: "Fetch examination results by hall ticket number",
	Long: `Results submits hall ticket numbers to an examination results portal,
extracts the student details, marks and latest SGPA/CGPA from the page and
exports them as spreadsheets or printable documents.

The portal URL comes from --url, RESULTS_URL or the "url" key of the config file.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// ctx is cancelled on interrupt so a running range stops between roll numbers.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: ")+err.Error())
		return 1
	}
	return 0
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		var opts app.Options
		if cmd.Flags().Lookup("header") != nil {
			raw, _ := cmd.Flags().GetStringArray("header")
			if opts.Headers, err = headersutil.Parse(raw); err != nil {
				return err
			}
		}

		appCtx, err := app.New(cmd.Context(), cfg, opts)
		if err != nil {
			return err
		}

		SetApp(cmd, appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetAppFromCmd(cmd)
		if appCtx == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = appCtx.Close(ctx)
		SetApp(cmd, nil)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for results")
	rootCmd.Flags().Bool("version", false, "Version for results")

	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		writeHelp(os.Stdout, cmd, true)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		writeHelp(os.Stderr, cmd, false)
		return nil
	})
}
