package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/internal/integration"
	"github.com/juan-rv/tallereval/internal/storage"
	"github.com/juan-rv/tallereval/pkg/models"
)

var (
	exportOutput   string
	templateOutput string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a workshop from a spreadsheet or a JSON backup",
	Long: `Import a workshop. The format is chosen by extension:

  .xlsx  bulk-load spreadsheet: replaces the workshop definition, stored
         evaluations are discarded
  .json  backup produced by 'tallereval export': restores the workshop and
         its evaluation results

Either way the synthesis is cleared and must be regenerated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}

		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			workshop, err := integration.ImportWorkshopXLSX(path)
			if err != nil {
				return err
			}
			state.Workshop = *workshop
			state.Evaluations = make(map[string]models.EvaluationResult)
			state.Synthesis = nil
			core.NormalizeActivityCounter(&state.Workshop)
		case ".json":
			snapshot, err := storage.ImportSnapshot(path)
			if err != nil {
				return err
			}
			core.ReplaceFromSnapshot(state, *snapshot)
		default:
			return fmt.Errorf("unsupported import format %q (use .xlsx or .json)", filepath.Ext(path))
		}

		if err := SessionStore.Save(state); err != nil {
			return err
		}
		fmt.Printf("Imported %s: %d section(s), %d stored evaluation(s)\n",
			path, len(state.Workshop.Sections), len(state.Evaluations))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the workshop and its evaluations as a JSON backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if SessionStore == nil {
			return fmt.Errorf("session store not initialized")
		}
		state, err := SessionStore.Load()
		if err != nil {
			return err
		}
		if len(state.Workshop.Sections) == 0 && len(state.Evaluations) == 0 {
			return fmt.Errorf("nothing to export: the workshop is empty")
		}

		output := exportOutput
		if output == "" {
			output = storage.SnapshotFileName(state.Workshop.Title)
		}
		if err := storage.ExportSnapshot(output, state); err != nil {
			return err
		}
		fmt.Printf("Backup written to %s\n", output)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the spreadsheet template for bulk workshop loading",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := templateOutput
		if output == "" {
			output = integration.TemplateFileName
		}
		if err := integration.WriteTemplateXLSX(output); err != nil {
			return err
		}
		fmt.Printf("Template written to %s\n", output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output JSON path (default derived from the workshop title)")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "Output XLSX path (default "+integration.TemplateFileName+")")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templateCmd)
}
