package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

var (
	workshopTitle      string
	workshopPopulation string
	workshopAgeRange   string
)

var workshopCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Configure and inspect the workshop under evaluation",
}

var workshopSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the workshop title, population, or age range",
	Long: `Set workshop-level configuration. Changing the population resets the age
range (the bands of the other population no longer apply) and discards the
synthesis; stored per-section evaluations are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			core.SetTitle(state, workshopTitle)
		}
		if cmd.Flags().Changed("population") {
			if err := core.SetPopulation(state, models.Population(workshopPopulation)); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("age-range") {
			if err := core.SetAgeRange(state, workshopAgeRange); err != nil {
				return err
			}
		}

		if err := SessionStore.Save(state); err != nil {
			return err
		}
		printWorkshopSummary(state)
		return nil
	},
}

var workshopShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the workshop configuration and age-range options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		printWorkshopSummary(state)
		fmt.Println()
		fmt.Printf("Age ranges for %q:\n", state.Workshop.Population)
		for _, code := range core.AgeRangeOptions(state.Workshop.Population) {
			marker := " "
			if code == state.Workshop.AgeRange {
				marker = "*"
			}
			fmt.Printf("  %s %-18s %s\n", marker, code, core.FormatAgeRange(code))
		}
		return nil
	},
}

func printWorkshopSummary(state *models.SessionState) {
	title := state.Workshop.Title
	if title == "" {
		title = "(untitled)"
	}
	ageRange := state.Workshop.AgeRange
	if ageRange == "" {
		ageRange = "(not selected)"
	} else {
		ageRange = core.FormatAgeRange(ageRange)
	}

	fmt.Printf("Workshop:   %s\n", title)
	fmt.Printf("Population: %s\n", state.Workshop.Population)
	fmt.Printf("Age range:  %s\n", ageRange)
	fmt.Printf("Sections:   %d (%d evaluated)\n", len(state.Workshop.Sections), evaluatedCount(state))
	if state.Synthesis != nil {
		fmt.Println("Synthesis:  available")
	}
}

func evaluatedCount(state *models.SessionState) int {
	count := 0
	for _, s := range state.Workshop.Sections {
		if _, ok := state.Evaluations[s.Label]; ok {
			count++
		}
	}
	return count
}

func init() {
	workshopSetCmd.Flags().StringVar(&workshopTitle, "title", "", "Workshop title")
	workshopSetCmd.Flags().StringVar(&workshopPopulation, "population", "", "Target population (joven, adulta)")
	workshopSetCmd.Flags().StringVar(&workshopAgeRange, "age-range", "", "Age range code (see 'workshop show')")
	workshopCmd.AddCommand(workshopSetCmd)
	workshopCmd.AddCommand(workshopShowCmd)
	rootCmd.AddCommand(workshopCmd)
}
