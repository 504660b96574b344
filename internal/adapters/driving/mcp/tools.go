package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query         string   `json:"query" jsonschema:"search term"`
	Label         *string  `json:"label,omitempty" jsonschema:"label value to scope the search; 'all' searches the whole index; defaults to the configured default label"`
	PageSize      *int     `json:"page_size,omitempty" jsonschema:"number of results per page (default 20)"`
	Start         *int     `json:"start,omitempty" jsonschema:"starting index for pagination (default 0)"`
	Sort          string   `json:"sort,omitempty" jsonschema:"sort order"`
	Lang          string   `json:"lang,omitempty" jsonschema:"search language"`
	IncludeFields []string `json:"include_fields,omitempty" jsonschema:"fields to include in each hit"`

	Snippets            bool    `json:"snippets,omitempty" jsonschema:"attach generated snippets to the leading hits"`
	SnippetSizeChars    *int    `json:"snippet_size_chars,omitempty" jsonschema:"desired characters per snippet fragment"`
	SnippetFragments    *int    `json:"snippet_fragments,omitempty" jsonschema:"maximum fragments per hit"`
	SnippetDocs         *int    `json:"snippet_docs,omitempty" jsonschema:"maximum hits to enrich with snippets"`
	SnippetTagPre       *string `json:"snippet_tag_pre,omitempty" jsonschema:"opening highlight tag (default <em>)"`
	SnippetTagPost      *string `json:"snippet_tag_post,omitempty" jsonschema:"closing highlight tag (default </em>)"`
	SnippetScanMaxChars *int    `json:"snippet_scan_max_chars,omitempty" jsonschema:"maximum characters of document text scanned for matches"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Prefix string   `json:"prefix" jsonschema:"search prefix for suggestions"`
	Num    *int     `json:"num,omitempty" jsonschema:"number of suggestions to return (default 10)"`
	Fields []string `json:"fields,omitempty" jsonschema:"fields to search for suggestions"`
	Lang   string   `json:"lang,omitempty" jsonschema:"search language"`
}

// PopularWordsInput is the input schema for the popular_words tool.
type PopularWordsInput struct {
	Label *string `json:"label,omitempty" jsonschema:"label scope; defaults to the configured default label"`
	Seed  *int    `json:"seed,omitempty" jsonschema:"random seed for word selection"`
	Field string  `json:"field,omitempty" jsonschema:"field to extract popular words from"`
}

// JobGetInput is the input schema for the job_get tool.
type JobGetInput struct {
	JobID string `json:"job_id" jsonschema:"the job id to query"`
}

// FetchByIDInput is the input schema for the fetch_content_by_id tool.
type FetchByIDInput struct {
	DocID string `json:"doc_id" jsonschema:"document id obtained from search results"`
}

// FetchChunkInput is the input schema for the fetch_content_chunk tool.
type FetchChunkInput struct {
	DocID  string `json:"doc_id" jsonschema:"document id obtained from search results"`
	Offset int    `json:"offset,omitempty" jsonschema:"character offset into the document (default 0)"`
	Length *int   `json:"length,omitempty" jsonschema:"number of characters to return (default maximum chunk size)"`
}

// NoInput is the input schema for tools without arguments.
type NoInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("search"),
		Description: s.searchDescription(),
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("suggest"),
		Description: suggestDescription,
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("popular_words"),
		Description: popularWordsDescription,
	}, s.handlePopularWords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("list_labels"),
		Description: listLabelsDescription,
	}, s.handleListLabels)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("health"),
		Description: healthDescription,
	}, s.handleHealth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("job_get"),
		Description: jobGetDescription,
	}, s.handleJobGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("fetch_content_by_id"),
		Description: s.fetchByIDDescription(),
	}, s.handleFetchByID)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        s.toolName("fetch_content_chunk"),
		Description: s.fetchChunkDescription(),
	}, s.handleFetchChunk)
}

// jsonResult renders v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, any, error) {
	req := domain.SearchRequest{
		Query:         input.Query,
		Label:         input.Label,
		PageSize:      input.PageSize,
		Sort:          input.Sort,
		Lang:          input.Lang,
		IncludeFields: input.IncludeFields,
		Snippets:      input.Snippets,
		Snippet: domain.SnippetArgs{
			SizeChars:    input.SnippetSizeChars,
			Fragments:    input.SnippetFragments,
			Docs:         input.SnippetDocs,
			ScanMaxChars: input.SnippetScanMaxChars,
			TagPre:       input.SnippetTagPre,
			TagPost:      input.SnippetTagPost,
		},
	}
	if input.Start != nil {
		req.Start = *input.Start
	}

	result, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(result)
}

// handleSuggest handles the suggest tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, any, error) {
	result, err := s.ports.Search.Suggest(ctx, domain.SuggestRequest{
		Prefix: input.Prefix,
		Num:    input.Num,
		Fields: input.Fields,
		Lang:   input.Lang,
	})
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(result)
}

// handlePopularWords handles the popular_words tool invocation.
func (s *Server) handlePopularWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PopularWordsInput,
) (*mcp.CallToolResult, any, error) {
	result, err := s.ports.Search.PopularWords(ctx, input.Label, input.Seed, input.Field)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(result)
}

// handleListLabels handles the list_labels tool invocation.
func (s *Server) handleListLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, any, error) {
	catalog, err := s.ports.Labels.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(catalog)
}

// handleHealth handles the health tool invocation.
func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, any, error) {
	result, err := s.ports.Search.Health(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(result)
}

// handleJobGet handles the job_get tool invocation.
func (s *Server) handleJobGet(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input JobGetInput,
) (*mcp.CallToolResult, any, error) {
	job, err := s.ports.Jobs.Get(input.JobID)
	if err != nil {
		return nil, nil, fmt.Errorf("job %q: %w", input.JobID, err)
	}
	return jsonResult(job)
}

// handleFetchByID handles the fetch_content_by_id tool invocation.
func (s *Server) handleFetchByID(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchByIDInput,
) (*mcp.CallToolResult, any, error) {
	doc, err := s.ports.Content.ByID(ctx, input.DocID)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(doc)
}

// handleFetchChunk handles the fetch_content_chunk tool invocation.
func (s *Server) handleFetchChunk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchChunkInput,
) (*mcp.CallToolResult, any, error) {
	chunk, err := s.ports.Content.Chunk(ctx, input.DocID, input.Offset, input.Length)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(chunk)
}
