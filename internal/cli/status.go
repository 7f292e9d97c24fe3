package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session at a glance",
	Long: `Show the workshop configuration, the per-section evaluation coverage, and
whether the mandatory sections (introduction, objective, one activity) are
ready for a synthesis.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		printWorkshopSummary(state)

		if Orchestrator != nil {
			if target, pending := Orchestrator.Pending(); pending {
				fmt.Printf("In flight:  %s\n", target)
			}
		}

		hasIntro, hasObjective, hasActivity := core.MandatoryCoverage(state)
		fmt.Println()
		fmt.Println("Synthesis readiness:")
		fmt.Printf("  introduction evaluated: %s\n", yesNo(hasIntro))
		fmt.Printf("  objective evaluated:    %s\n", yesNo(hasObjective))
		fmt.Printf("  activity evaluated:     %s\n", yesNo(hasActivity))

		if state.Synthesis != nil && state.Synthesis.Metrics != nil {
			fmt.Printf("\nGlobal average: %.1f/5.0", state.Synthesis.Metrics.Average)
			if state.Synthesis.Metrics.Status != "" {
				fmt.Printf(" (%s)", state.Synthesis.Metrics.Status)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
