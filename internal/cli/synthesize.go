package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Aggregate the stored results into a workshop-level synthesis",
	Long: `Send every stored section result to the scoring service in one request and
store the returned systemic analysis. The introduction, the objective, and
at least one activity should be evaluated first; the objective is mandatory.

A new synthesis replaces the previous one wholesale. Ctrl-C aborts the
request and keeps the old synthesis.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil || Orchestrator == nil {
			return fmt.Errorf("evaluator not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		hasIntro, hasObjective, hasActivity := core.MandatoryCoverage(state)
		if !hasIntro || !hasObjective || !hasActivity {
			fmt.Println("Warning: the synthesis works best with the introduction, the objective, and at least one activity evaluated.")
			fmt.Printf("  introduction: %s  objective: %s  activity: %s\n\n",
				yesNo(hasIntro), yesNo(hasObjective), yesNo(hasActivity))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			Orchestrator.Cancel()
		}()

		fmt.Println("Synthesizing workshop (Ctrl-C to cancel)...")
		result, err := Orchestrator.Synthesize(ctx, state)
		if errors.Is(err, core.ErrCancelled) {
			fmt.Println("Synthesis cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		if err := SessionStore.Save(state); err != nil {
			return err
		}
		printSynthesis(result)
		return nil
	},
}

func printSynthesis(result *models.SynthesisResult) {
	fmt.Println("\nSynthesis stored.")
	if result.Metrics != nil {
		fmt.Printf("Global average: %.1f/5.0", result.Metrics.Average)
		if result.Metrics.Status != "" {
			fmt.Printf(" (%s)", result.Metrics.Status)
		}
		fmt.Println()
	}
	if narrative := core.ResolveSynthesisNarrative(result.Final); narrative != "" {
		fmt.Printf("\n%s\n", narrative)
	}
	if result.Final != nil && len(result.Final.ActionRoute) > 0 {
		fmt.Println("\nImprovement route:")
		for i, step := range result.Final.ActionRoute {
			fmt.Printf("  %d. %s\n", i+1, step.Strategy)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)
}
