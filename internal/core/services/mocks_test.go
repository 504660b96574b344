package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
)

// mockSearchEngine implements driven.SearchEngine for testing.
type mockSearchEngine struct {
	mu sync.Mutex

	searchResult domain.Record
	searchErr    error
	lastSearch   domain.SearchParams

	suggestResult domain.Record
	lastSuggest   domain.SuggestParams

	popularResult domain.Record
	lastPopular   domain.PopularWordsParams

	healthResult domain.Record
	healthErr    error

	// texts maps doc IDs to extracted text; textErrs overrides with errors.
	texts       map[string]string
	textErrs    map[string]error
	textFilters []string

	// textDelay holds each DocumentText call open; inFlight and peak count
	// concurrent calls.
	textDelay time.Duration
	inFlight  atomic.Int32
	peak      atomic.Int32

	docs map[string]domain.Record
}

var _ driven.SearchEngine = (*mockSearchEngine)(nil)

func (m *mockSearchEngine) Search(_ context.Context, params domain.SearchParams) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSearch = params
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResult, nil
}

func (m *mockSearchEngine) Suggest(_ context.Context, params domain.SuggestParams) (domain.Record, error) {
	m.lastSuggest = params
	return m.suggestResult, nil
}

func (m *mockSearchEngine) PopularWords(_ context.Context, params domain.PopularWordsParams) (domain.Record, error) {
	m.lastPopular = params
	return m.popularResult, nil
}

func (m *mockSearchEngine) Labels(_ context.Context) ([]domain.FessLabel, error) {
	return nil, nil
}

func (m *mockSearchEngine) Health(_ context.Context) (domain.Record, error) {
	if m.healthErr != nil {
		return nil, m.healthErr
	}
	return m.healthResult, nil
}

func (m *mockSearchEngine) Document(_ context.Context, docID, _ string) (domain.Record, error) {
	doc, ok := m.docs[docID]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, docID)
	}
	return doc, nil
}

func (m *mockSearchEngine) DocumentText(_ context.Context, docID, labelFilter string) (string, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if m.textDelay > 0 {
		time.Sleep(m.textDelay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.textFilters = append(m.textFilters, labelFilter)
	if err, ok := m.textErrs[docID]; ok {
		return "", err
	}
	text, ok := m.texts[docID]
	if !ok {
		return "", fmt.Errorf("%w: doc_id=%s", domain.ErrNotFound, docID)
	}
	return text, nil
}

// mockLabelSource implements driven.LabelSource for testing.
type mockLabelSource struct {
	labels []domain.FessLabel
	err    error
	calls  int
}

var _ driven.LabelSource = (*mockLabelSource)(nil)

func (m *mockLabelSource) Labels(_ context.Context, _ bool) ([]domain.FessLabel, error) {
	m.calls++
	if m.err != nil {
		return []domain.FessLabel{}, m.err
	}
	return m.labels, nil
}

// testConfig returns a valid configuration with an "hr" label.
func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.FessBaseURL = "http://localhost:8080"
	cfg.Domain = domain.DomainConfig{ID: "test", Name: "Test"}
	cfg.Labels = map[string]domain.LabelDescriptor{
		"hr": {Title: "Human Resources", Description: "HR policies", Examples: []string{"leave"}},
	}
	cfg.Normalise()
	return cfg
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// hitsRecord builds a Fess search response with one hit per doc ID.
func hitsRecord(docIDs ...string) domain.Record {
	data := make([]any, 0, len(docIDs))
	for _, id := range docIDs {
		data = append(data, map[string]any{
			"doc_id": id,
			"_id":    "internal-" + id,
			"title":  "Title " + id,
			"url":    "http://example.com/" + id,
		})
	}
	return domain.Record{"record_count": len(docIDs), "data": data}
}
