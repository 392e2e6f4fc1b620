package application_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/abdidvp/rulecheck/internal/domain"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	rules []string
	err   error
	// gate, when set, blocks the call until it is closed.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeExtractor) ExtractRules(_ context.Context, _ domain.UploadSelection) ([]string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.rules, f.err
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeValidator struct {
	mu      sync.Mutex
	calls   int
	resp    *domain.ValidationResponse
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeValidator) ValidateDataset(_ context.Context, _ domain.UploadSelection) (*domain.ValidationResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.resp, f.err
}

func (f *fakeValidator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeInspector accepts .pdf documents and .csv datasets by extension.
type fakeInspector struct{}

func (fakeInspector) Inspect(path string, kind domain.UploadKind) (domain.UploadSelection, error) {
	want := map[domain.UploadKind]string{domain.UploadDocument: ".pdf", domain.UploadDataset: ".csv"}[kind]
	if filepath.Ext(path) != want {
		return domain.UploadSelection{}, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFile)
	}
	return domain.UploadSelection{
		Path:     path,
		Name:     filepath.Base(path),
		Kind:     kind,
		MIMEType: domain.AcceptedMIME[kind],
	}, nil
}

type memHistory struct {
	entries []domain.RunEntry
	err     error
}

func (m *memHistory) Save(_ string, e domain.RunEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memHistory) Load(string) ([]domain.RunEntry, error) { return m.entries, nil }

type memRuleStore struct {
	saved *domain.RuleSet
	saves int
}

func (m *memRuleStore) Load(string) (*domain.RuleSet, error) { return m.saved, nil }

func (m *memRuleStore) Save(_ string, set *domain.RuleSet) error {
	m.saved = set
	m.saves++
	return nil
}

type fakeGit struct{ hash string }

func (g fakeGit) CommitHash(string) (string, error) {
	if g.hash == "" {
		return "", fmt.Errorf("not a git repository")
	}
	return g.hash, nil
}

func docSelection() domain.UploadSelection {
	return domain.UploadSelection{Path: "/data/policy.pdf", Name: "policy.pdf", Kind: domain.UploadDocument, MIMEType: "application/pdf"}
}

func datasetSelection() domain.UploadSelection {
	return domain.UploadSelection{Path: "/data/loans.csv", Name: "loans.csv", Kind: domain.UploadDataset, MIMEType: "text/csv"}
}
