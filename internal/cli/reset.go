package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/internal/observability"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the whole session and start over",
	Long: `Discard the workshop, every stored evaluation, and the synthesis. The
scoring service is notified so it can drop any cached context; that
notification is best effort and a failure does not block the reset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}

		if !resetForce {
			fmt.Print("Discard the workshop and all evaluations? [y/N]: ")
			reader := bufio.NewReader(os.Stdin)
			input, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		population := state.Workshop.Population
		if Config != nil {
			population = Config.DefaultPopulation
		}
		core.ResetState(state, population)
		if err := SessionStore.Save(state); err != nil {
			return err
		}

		if Service != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := Service.NotifyReset(ctx); err != nil {
				fmt.Printf("Warning: could not notify the scoring service: %v\n", err)
			}
		}

		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Time:    time.Now().UTC(),
				Level:   "INFO",
				Type:    "session.reset",
				Message: "session.reset",
			})
		}

		fmt.Println("Session reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
