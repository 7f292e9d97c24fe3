package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/juan-rv/tallereval/pkg/models"
)

// ExportSnapshot writes a JSON backup of the workshop and its evaluation
// results. The synthesis is deliberately excluded: it is regenerated after a
// restore.
func ExportSnapshot(path string, state *models.SessionState) error {
	snapshot := models.Snapshot{
		Workshop:    state.Workshop,
		Evaluations: state.Evaluations,
		Timestamp:   time.Now().UTC(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("exporting snapshot: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("exporting snapshot: %w", err)
	}
	return nil
}

// ImportSnapshot reads a JSON backup produced by ExportSnapshot.
func ImportSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("importing snapshot: parsing %s: %w", path, err)
	}
	if len(snapshot.Workshop.Sections) == 0 && len(snapshot.Evaluations) == 0 {
		return nil, fmt.Errorf("importing snapshot: %s holds no workshop data", path)
	}
	return &snapshot, nil
}

// SnapshotFileName derives the default backup file name from the workshop
// title, falling back to a generic name for untitled workshops.
func SnapshotFileName(title string) string {
	if title == "" {
		return "taller_backup.json"
	}
	return fmt.Sprintf("taller_%s.json", strings.ReplaceAll(title, " ", "_"))
}
