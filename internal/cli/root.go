// Package cli implements the tallereval command tree: workshop and section
// editing, evaluation and synthesis requests, report generation, and the
// spreadsheet and backup exchange commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "tallereval",
	Short: "Pedagogical workshop evaluator",
	Long: `tallereval evaluates educational workshops section by section against a
remote scoring service, aggregates the results into a systemic synthesis,
and renders a paginated PDF report.

Workshops are edited locally (introduction, objective, activities), loaded
in bulk from a spreadsheet, and exchanged as JSON backups.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tallereval %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
