package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

var (
	sectionContent   string
	activityTitle    string
	activityModality string
	activityDuration string
	activityMaterial []string
	activitySteps    []string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Add, remove, and list workshop sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <introduccion|objetivo|actividad>",
	Short: "Add a section to the workshop",
	Long: `Add a section. Introduction and objective sections take --content and may
appear at most once. Activity sections take --title and --step (repeatable)
and are auto-named "Actividad N"; deleted numbers are never reused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		var section *models.Section
		switch strings.ToLower(args[0]) {
		case "introduccion", "introducción":
			section, err = core.AddTextSection(state, models.KindIntroduction, sectionContent)
		case "objetivo":
			section, err = core.AddTextSection(state, models.KindObjective, sectionContent)
		case "actividad":
			section, err = core.AddActivitySection(state, models.ActivityDetail{
				Title:     activityTitle,
				Modality:  activityModality,
				Duration:  activityDuration,
				Materials: activityMaterial,
				Steps:     activitySteps,
			})
		default:
			return fmt.Errorf("unknown section type %q (use introduccion, objetivo, or actividad)", args[0])
		}
		if err != nil {
			return err
		}

		if err := SessionStore.Save(state); err != nil {
			return err
		}
		fmt.Printf("Added section %q\n", section.Label)
		return nil
	},
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a section and its stored evaluation",
	Long: `Remove the section with the given label. Its evaluation result is deleted
with it, and any synthesis is discarded since it no longer describes the
workshop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		if err := core.RemoveSection(state, args[0]); err != nil {
			return err
		}
		if err := SessionStore.Save(state); err != nil {
			return err
		}
		fmt.Printf("Removed section %q\n", args[0])
		return nil
	},
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the workshop sections and their evaluation state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		if len(state.Workshop.Sections) == 0 {
			fmt.Println("No sections yet. Add one with 'tallereval section add'.")
			return nil
		}

		fmt.Printf("  %-16s %-14s %-10s %s\n", "LABEL", "TYPE", "SCORE", "SUMMARY")
		fmt.Printf("  %-16s %-14s %-10s %s\n", "-----", "----", "-----", "-------")
		for _, s := range state.Workshop.Sections {
			score := "-"
			summary := "(not evaluated)"
			if result, ok := state.Evaluations[s.Label]; ok {
				if result.Statistics != nil {
					score = fmt.Sprintf("%.1f/5.0", result.Statistics.Average)
				} else {
					score = "N/A"
				}
				summary = truncate(core.ResolveNarrative(&result), 60)
			}
			fmt.Printf("  %-16s %-14s %-10s %s\n", s.Label, s.Kind, score, summary)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	sectionAddCmd.Flags().StringVar(&sectionContent, "content", "", "Text content (introduction and objective sections)")
	sectionAddCmd.Flags().StringVar(&activityTitle, "title", "", "Activity title")
	sectionAddCmd.Flags().StringVar(&activityModality, "modality", "", "Activity modality (default Presencial)")
	sectionAddCmd.Flags().StringVar(&activityDuration, "duration", "", "Activity duration (default N/A)")
	sectionAddCmd.Flags().StringSliceVar(&activityMaterial, "material", nil, "Activity material (repeatable)")
	sectionAddCmd.Flags().StringSliceVar(&activitySteps, "step", nil, "Activity step (repeatable)")
	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
	sectionCmd.AddCommand(sectionListCmd)
	rootCmd.AddCommand(sectionCmd)
}
