// Package storage persists the evaluation session: the working state as a
// YAML file under the base path, and JSON snapshot backups for exchange.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/juan-rv/tallereval/pkg/models"
)

// SessionStoreManager defines the interface for loading and saving the
// working session state.
type SessionStoreManager interface {
	Load() (*models.SessionState, error)
	Save(state *models.SessionState) error
	Path() string
}

type fileSessionStore struct {
	basePath          string
	defaultPopulation models.Population
}

// NewSessionStoreManager creates a SessionStoreManager backed by a YAML file
// under the given base directory. defaultPopulation seeds sessions when no
// file exists yet.
func NewSessionStoreManager(basePath string, defaultPopulation models.Population) SessionStoreManager {
	return &fileSessionStore{basePath: basePath, defaultPopulation: defaultPopulation}
}

func (s *fileSessionStore) Path() string {
	return filepath.Join(s.basePath, "session.yaml")
}

// Load reads the session state from disk. A missing file yields a fresh
// empty session.
func (s *fileSessionStore) Load() (*models.SessionState, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewSessionState(s.defaultPopulation), nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var state models.SessionState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if state.Evaluations == nil {
		state.Evaluations = make(map[string]models.EvaluationResult)
	}
	if state.Workshop.Population == "" {
		state.Workshop.Population = s.defaultPopulation
	}
	return &state, nil
}

// Save persists the session state, stamping UpdatedAt.
func (s *fileSessionStore) Save(state *models.SessionState) error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("saving session: creating directory: %w", err)
	}

	state.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("saving session: encoding: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o600); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
