package mcp

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result domain.Record
	err    error

	lastSearch  domain.SearchRequest
	lastSuggest domain.SuggestRequest
	lastLabel   *string
	lastSeed    *int
	lastField   string
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (domain.Record, error) {
	m.lastSearch = req
	return m.result, m.err
}

func (m *mockSearchService) Suggest(_ context.Context, req domain.SuggestRequest) (domain.Record, error) {
	m.lastSuggest = req
	return m.result, m.err
}

func (m *mockSearchService) PopularWords(
	_ context.Context,
	label *string,
	seed *int,
	field string,
) (domain.Record, error) {
	m.lastLabel, m.lastSeed, m.lastField = label, seed, field
	return m.result, m.err
}

func (m *mockSearchService) Health(_ context.Context) (domain.Record, error) {
	return m.result, m.err
}

// mockLabelService is a mock implementation of driving.LabelService.
type mockLabelService struct {
	catalog domain.LabelCatalog
	err     error
}

func (m *mockLabelService) List(_ context.Context) (domain.LabelCatalog, error) {
	return m.catalog, m.err
}

func (m *mockLabelService) Validate(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLabelService) DefaultLabel() string {
	return m.catalog.DefaultLabel
}

// mockContentService is a mock implementation of driving.ContentService.
type mockContentService struct {
	chunk    domain.ContentChunk
	doc      domain.ContentDocument
	text     string
	metadata domain.Record
	err      error

	lastDocID  string
	lastOffset int
	lastLength *int
}

func (m *mockContentService) Chunk(
	_ context.Context,
	docID string,
	offset int,
	length *int,
) (domain.ContentChunk, error) {
	m.lastDocID, m.lastOffset, m.lastLength = docID, offset, length
	return m.chunk, m.err
}

func (m *mockContentService) ByID(_ context.Context, docID string) (domain.ContentDocument, error) {
	m.lastDocID = docID
	return m.doc, m.err
}

func (m *mockContentService) Resource(_ context.Context, docID string) (string, error) {
	m.lastDocID = docID
	return m.text, m.err
}

func (m *mockContentService) Metadata(_ context.Context, docID string) (domain.Record, error) {
	m.lastDocID = docID
	return m.metadata, m.err
}

// mockJobService is a mock implementation of driving.JobService.
type mockJobService struct {
	jobs map[string]domain.Job
}

func (m *mockJobService) Start(kind string, total int) domain.Job {
	return domain.Job{ID: "job-1", Kind: kind, Total: total, State: domain.JobRunning}
}

func (m *mockJobService) Progress(string, int, string) {}

func (m *mockJobService) Finish(string, error) {}

func (m *mockJobService) Get(jobID string) (domain.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return domain.Job{}, domain.ErrNotFound
	}
	return job, nil
}

type testPorts struct {
	search  *mockSearchService
	labels  *mockLabelService
	content *mockContentService
	jobs    *mockJobService
}

func newTestPorts() *testPorts {
	return &testPorts{
		search:  &mockSearchService{},
		labels:  &mockLabelService{},
		content: &mockContentService{},
		jobs:    &mockJobService{jobs: map[string]domain.Job{}},
	}
}

func (p *testPorts) ports() *Ports {
	return &Ports{Search: p.search, Labels: p.labels, Content: p.content, Jobs: p.jobs}
}

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.FessBaseURL = "http://localhost:8080"
	cfg.Domain = domain.DomainConfig{ID: "kb", Name: "Knowledge Base", Description: "Company handbook"}
	cfg.Normalise()
	return cfg
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
