package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

func newTestServer(t *testing.T, p *testPorts) *Server {
	t.Helper()
	server, err := NewServer(testConfig(), p.ports())
	require.NoError(t, err)
	return server
}

// decodeResult parses the JSON text content of a tool result.
func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("maps input to request", func(t *testing.T) {
		p := newTestPorts()
		p.search.result = domain.Record{"record_count": 2, "data": []any{}}
		server := newTestServer(t, p)

		input := SearchInput{
			Query:            "vacation policy",
			Label:            strPtr("hr"),
			PageSize:         intPtr(10),
			Start:            intPtr(20),
			Sort:             "score.desc",
			Lang:             "en",
			IncludeFields:    []string{"title", "url"},
			Snippets:         true,
			SnippetSizeChars: intPtr(120),
			SnippetDocs:      intPtr(2),
			SnippetTagPre:    strPtr("**"),
			SnippetTagPost:   strPtr("**"),
		}
		res, _, err := server.handleSearch(ctx, nil, input)
		require.NoError(t, err)

		req := p.search.lastSearch
		assert.Equal(t, "vacation policy", req.Query)
		assert.Equal(t, "hr", *req.Label)
		assert.Equal(t, 10, *req.PageSize)
		assert.Equal(t, 20, req.Start)
		assert.Equal(t, "score.desc", req.Sort)
		assert.Equal(t, "en", req.Lang)
		assert.Equal(t, []string{"title", "url"}, req.IncludeFields)
		assert.True(t, req.Snippets)
		assert.Equal(t, 120, *req.Snippet.SizeChars)
		assert.Nil(t, req.Snippet.Fragments)
		assert.Equal(t, 2, *req.Snippet.Docs)
		assert.Equal(t, "**", *req.Snippet.TagPre)
		assert.Equal(t, "**", *req.Snippet.TagPost)

		var out map[string]any
		decodeResult(t, res, &out)
		assert.EqualValues(t, 2, out["record_count"])
	})

	t.Run("start defaults to zero", func(t *testing.T) {
		p := newTestPorts()
		server := newTestServer(t, p)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "q"})
		require.NoError(t, err)
		assert.Equal(t, 0, p.search.lastSearch.Start)
		assert.Nil(t, p.search.lastSearch.Label)
		assert.Nil(t, p.search.lastSearch.PageSize)
	})

	t.Run("propagates service error", func(t *testing.T) {
		p := newTestPorts()
		p.search.err = domain.ErrUnknownLabel
		server := newTestServer(t, p)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "q", Label: strPtr("nope")})
		assert.ErrorIs(t, err, domain.ErrUnknownLabel)
	})
}

func TestServer_handleSuggest(t *testing.T) {
	p := newTestPorts()
	p.search.result = domain.Record{"data": []any{"handbook"}}
	server := newTestServer(t, p)

	res, _, err := server.handleSuggest(context.Background(), nil, SuggestInput{
		Prefix: "hand",
		Num:    intPtr(3),
		Fields: []string{"title"},
		Lang:   "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "hand", p.search.lastSuggest.Prefix)
	assert.Equal(t, 3, *p.search.lastSuggest.Num)
	assert.Equal(t, []string{"title"}, p.search.lastSuggest.Fields)
	assert.Equal(t, "en", p.search.lastSuggest.Lang)

	var out map[string]any
	decodeResult(t, res, &out)
	assert.Equal(t, []any{"handbook"}, out["data"])
}

func TestServer_handlePopularWords(t *testing.T) {
	p := newTestPorts()
	p.search.result = domain.Record{"data": []any{"policy"}}
	server := newTestServer(t, p)

	_, _, err := server.handlePopularWords(context.Background(), nil, PopularWordsInput{
		Seed:  intPtr(7),
		Field: "title",
	})
	require.NoError(t, err)
	assert.Nil(t, p.search.lastLabel)
	assert.Equal(t, 7, *p.search.lastSeed)
	assert.Equal(t, "title", p.search.lastField)
}

func TestServer_handleListLabels(t *testing.T) {
	t.Run("returns catalog", func(t *testing.T) {
		p := newTestPorts()
		p.labels.catalog = domain.LabelCatalog{
			Labels: []domain.LabelEntry{
				{Value: "all", Title: "All documents", IsConfigured: true, IsPresentInFess: true},
			},
			DefaultLabel:  "all",
			StrictLabels:  true,
			FessAvailable: false,
		}
		server := newTestServer(t, p)

		res, _, err := server.handleListLabels(context.Background(), nil, NoInput{})
		require.NoError(t, err)

		var out domain.LabelCatalog
		decodeResult(t, res, &out)
		assert.Equal(t, p.labels.catalog, out)
	})

	t.Run("propagates error", func(t *testing.T) {
		p := newTestPorts()
		p.labels.err = errors.New("boom")
		server := newTestServer(t, p)

		_, _, err := server.handleListLabels(context.Background(), nil, NoInput{})
		assert.EqualError(t, err, "boom")
	})
}

func TestServer_handleHealth(t *testing.T) {
	p := newTestPorts()
	p.search.result = domain.Record{"data": map[string]any{"status": "green"}}
	server := newTestServer(t, p)

	res, _, err := server.handleHealth(context.Background(), nil, NoInput{})
	require.NoError(t, err)

	var out map[string]any
	decodeResult(t, res, &out)
	assert.Equal(t, map[string]any{"status": "green"}, out["data"])
}

func TestServer_handleJobGet(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("known job", func(t *testing.T) {
		p := newTestPorts()
		p.jobs.jobs["j1"] = domain.Job{
			ID: "j1", Kind: "search_snippets", State: domain.JobDone,
			Progress: 100, Total: 4, Completed: 4, CreatedAt: created, UpdatedAt: created,
		}
		server := newTestServer(t, p)

		res, _, err := server.handleJobGet(context.Background(), nil, JobGetInput{JobID: "j1"})
		require.NoError(t, err)

		var out domain.Job
		decodeResult(t, res, &out)
		assert.Equal(t, p.jobs.jobs["j1"], out)
	})

	t.Run("unknown job", func(t *testing.T) {
		server := newTestServer(t, newTestPorts())

		_, _, err := server.handleJobGet(context.Background(), nil, JobGetInput{JobID: "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), `"missing"`)
	})
}

func TestServer_handleFetchByID(t *testing.T) {
	t.Run("returns document", func(t *testing.T) {
		p := newTestPorts()
		p.content.doc = domain.ContentDocument{
			Content:     "hello",
			TotalLength: 5,
			Metadata:    domain.ContentMetadata{MaxChunkSize: 262144},
		}
		server := newTestServer(t, p)

		res, _, err := server.handleFetchByID(context.Background(), nil, FetchByIDInput{DocID: "d1"})
		require.NoError(t, err)
		assert.Equal(t, "d1", p.content.lastDocID)

		var out domain.ContentDocument
		decodeResult(t, res, &out)
		assert.Equal(t, p.content.doc, out)
	})

	t.Run("content disabled", func(t *testing.T) {
		p := newTestPorts()
		p.content.err = domain.ErrContentDisabled
		server := newTestServer(t, p)

		_, _, err := server.handleFetchByID(context.Background(), nil, FetchByIDInput{DocID: "d1"})
		assert.ErrorIs(t, err, domain.ErrContentDisabled)
	})
}

func TestServer_handleFetchChunk(t *testing.T) {
	p := newTestPorts()
	p.content.chunk = domain.ContentChunk{
		Content:     "llo",
		HasMore:     true,
		Offset:      2,
		Length:      3,
		TotalLength: 10,
		Metadata:    domain.ContentMetadata{MaxChunkSize: 262144},
	}
	server := newTestServer(t, p)

	res, _, err := server.handleFetchChunk(context.Background(), nil, FetchChunkInput{
		DocID:  "d1",
		Offset: 2,
		Length: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", p.content.lastDocID)
	assert.Equal(t, 2, p.content.lastOffset)
	assert.Equal(t, 3, *p.content.lastLength)

	var out domain.ContentChunk
	decodeResult(t, res, &out)
	assert.Equal(t, p.content.chunk, out)
}

func TestServer_toolDescriptions(t *testing.T) {
	server := newTestServer(t, newTestPorts())

	assert.Contains(t, server.searchDescription(), "[Knowledge Domain]")
	assert.Contains(t, server.searchDescription(), "page_size may be at most 100")
	assert.Contains(t, server.fetchByIDDescription(), "**Maximum chunk size:** 262144 bytes.")
	assert.Contains(t, server.fetchChunkDescription(), "hasMore=true")
	assert.Contains(t, server.docContentDescription(), "`fess_kb_fetch_content_chunk`")
}
