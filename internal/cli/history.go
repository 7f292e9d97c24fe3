package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/observability"
)

var (
	historyType  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent evaluation events",
	Long: `Show the recorded evaluation lifecycle events (started, completed,
cancelled, failed) from the session's event log, newest last.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized (observability may be disabled)")
		}

		events, err := EventLog.Read(observability.EventFilter{Type: historyType})
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}

		if historyLimit > 0 && len(events) > historyLimit {
			events = events[len(events)-historyLimit:]
		}

		fmt.Printf("  %-20s %-6s %-24s %s\n", "TIME", "LEVEL", "TYPE", "TARGET")
		fmt.Printf("  %-20s %-6s %-24s %s\n", "----", "-----", "----", "------")
		for _, e := range events {
			fmt.Printf("  %-20s %-6s %-24s %s\n",
				e.Time.Local().Format("2006-01-02 15:04:05"), e.Level, e.Type, e.Target)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyType, "type", "", "Filter by event type (e.g. evaluation.completed)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of events to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
