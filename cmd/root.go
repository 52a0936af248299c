package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"sheetlog/pkg/logging"
)

// rootCmd is the entry point when the application is called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "sheetlog",
	Short: "Workout logging backed by Google Sheets",
	Long: `sheetlog serves a small web application that stores workout logs in a
user-owned Google Spreadsheet. Users authenticate with a local account,
authorize spreadsheet access through Google OAuth and link a duplicated
copy of the workout template.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application. Errors are reported once, in
	// Execute, through the logging fallback.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command. Called from main to
// inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sheetlog version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Flag and configuration errors surface before the logger is
		// initialized, so this writes straight to stderr.
		logging.Fallback("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
