package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [label]",
	Short: "Evaluate one section against the scoring service",
	Long: `Send a section to the scoring service and store the result. Without a
label, an interactive picker lists the sections.

Only one request runs at a time. Ctrl-C aborts it: the local request is
cancelled immediately and the service is notified in the background; a
response that arrives after the abort is discarded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil || Orchestrator == nil {
			return fmt.Errorf("evaluator not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			label, err = pickSection(state)
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			Orchestrator.Cancel()
		}()

		fmt.Printf("Evaluating %q (Ctrl-C to cancel)...\n", label)
		result, err := Orchestrator.EvaluateSection(ctx, state, label)
		if errors.Is(err, core.ErrCancelled) {
			fmt.Println("Evaluation cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		if err := SessionStore.Save(state); err != nil {
			return err
		}
		printEvaluation(label, result)
		return nil
	},
}

func printEvaluation(label string, result *models.EvaluationResult) {
	fmt.Printf("\nSection %q evaluated.\n", label)
	if result.Statistics != nil {
		fmt.Printf("Average: %.1f/5.0\n", result.Statistics.Average)
	}
	if narrative := core.ResolveNarrative(result); narrative != "" {
		fmt.Printf("\n%s\n", narrative)
	}
	if phrases := core.ResolveKeyPhrases(result); len(phrases) > 0 {
		fmt.Println("\nKey phrases:")
		for _, p := range phrases {
			fmt.Printf("  - %s\n", p)
		}
	}
	for _, ind := range result.Indicators {
		fmt.Printf("\n[%s] %s: %g/5\n", core.ModelDisplayName(ind.Model), core.Humanize(ind.Name), ind.Score)
	}
}

// pickSection shows an interactive list of the workshop sections and returns
// the selected label. Returns an error if there are no sections or the user
// cancels.
func pickSection(state *models.SessionState) (string, error) {
	sections := state.Workshop.Sections
	if len(sections) == 0 {
		return "", fmt.Errorf("no sections to evaluate (use 'tallereval section add' first)")
	}

	fmt.Println("\nSections:")
	fmt.Println()
	fmt.Printf("  %-4s %-16s %-14s %s\n", "#", "LABEL", "TYPE", "EVALUATED")
	fmt.Printf("  %-4s %-16s %-14s %s\n", "---", "-----", "----", "---------")
	for i, s := range sections {
		evaluated := "no"
		if _, ok := state.Evaluations[s.Label]; ok {
			evaluated = "yes"
		}
		fmt.Printf("  %-4d %-16s %-14s %s\n", i+1, s.Label, s.Kind, evaluated)
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Select section [1-%d] (or 'q' to cancel): ", len(sections))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			return "", fmt.Errorf("cancelled")
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(sections) {
			fmt.Printf("  Invalid selection. Enter a number between 1 and %d.\n", len(sections))
			continue
		}
		return sections[num-1].Label, nil
	}
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
