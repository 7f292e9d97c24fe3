package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/report"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the evaluation report as a PDF",
	Long: `Compile the stored evaluations and synthesis into the technical report and
write it as a PDF. Requires a synthesis (run 'tallereval synthesize' first).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		doc, err := report.Compile(state, time.Now())
		if err != nil {
			return err
		}

		output := reportOutput
		if output == "" {
			output = report.ReportFileName(state.Workshop.Title)
		}
		if err := report.RenderPDF(doc, output); err != nil {
			return err
		}

		fmt.Printf("Report written to %s (%d page(s))\n", output, len(doc.Pages))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output PDF path (default derived from the workshop title)")
	rootCmd.AddCommand(reportCmd)
}
