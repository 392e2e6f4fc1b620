package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/rulecheck/internal/domain"
)

const historyFile = ".rulecheck/history/runs.json"

// FileHistory implements domain.RunHistory as a JSON array on disk. Only the
// newest limit entries are kept.
type FileHistory struct {
	limit int
}

// New returns a FileHistory keeping domain.DefaultHistoryLimit entries.
func New() *FileHistory {
	return NewWithLimit(domain.DefaultHistoryLimit)
}

// NewWithLimit returns a FileHistory keeping at most limit entries.
// A non-positive limit falls back to domain.DefaultHistoryLimit.
func NewWithLimit(limit int) *FileHistory {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &FileHistory{limit: limit}
}

// Limit reports how many entries Save retains.
func (h *FileHistory) Limit() int { return h.limit }

// Save appends entry and drops the oldest entries beyond the limit. The file
// is replaced atomically so a crash never leaves a truncated array.
func (h *FileHistory) Save(dir string, entry domain.RunEntry) error {
	entries, err := h.Load(dir)
	if err != nil {
		return err
	}
	entries = Last(append(entries, entry), h.limit)

	fp := filepath.Join(dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp := fp + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp, fp)
}

// Load returns every stored entry, oldest first. A missing file is an
// empty history.
func (h *FileHistory) Load(dir string) ([]domain.RunEntry, error) {
	fp := filepath.Join(dir, historyFile)

	data, err := os.ReadFile(fp)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return entries, nil
}

// Last returns up to n most recent entries, newest last.
func Last(entries []domain.RunEntry, n int) []domain.RunEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
