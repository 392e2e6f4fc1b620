package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/rulecheck/internal/domain"
)

// Store is a file-based implementation of domain.RuleStore.
type Store struct{}

// New creates a new file-based rule store.
func New() *Store {
	return &Store{}
}

// Load reads the saved rule set. Returns (nil, nil) if nothing was saved.
func (s *Store) Load(dir string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(rulesPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no saved rules is not an error
		}
		return nil, err
	}

	var set domain.RuleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing saved rules: %w", err)
	}
	return &set, nil
}

// Save replaces the saved rule set, creating directories as needed.
func (s *Store) Save(dir string, set *domain.RuleSet) error {
	if err := os.MkdirAll(cacheDir(dir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	tmp := rulesPath(dir) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, rulesPath(dir))
}

// Invalidate removes the saved rule set.
func (s *Store) Invalidate(dir string) error {
	if err := os.Remove(rulesPath(dir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(dir string) string {
	return filepath.Join(dir, ".rulecheck", "cache")
}

func rulesPath(dir string) string {
	return filepath.Join(cacheDir(dir), "rules.json")
}
