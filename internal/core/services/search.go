package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
	"github.com/Buttje/mcp-fess/internal/core/ports/driving"
	"github.com/Buttje/mcp-fess/internal/core/snippet"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Response keys added to Fess results.
const (
	SnippetsKey = "mcp_snippets"
	JobIDKey    = "mcp_job_id"
)

// JobKindSnippets is the job kind for snippet enrichment.
const JobKindSnippets = "search_snippets"

// SearchService forwards queries to Fess and enriches the results.
type SearchService struct {
	engine      driven.SearchEngine
	labels      *LabelService
	jobs        driving.JobService
	limits      domain.LimitsConfig
	longRunning time.Duration
}

// NewSearchService creates a new search service.
func NewSearchService(
	cfg domain.Config,
	engine driven.SearchEngine,
	labels *LabelService,
	jobs driving.JobService,
) *SearchService {
	return &SearchService{
		engine:      engine,
		labels:      labels,
		jobs:        jobs,
		limits:      cfg.Limits,
		longRunning: cfg.Timeouts.LongRunningThreshold(),
	}
}

// Search validates req, queries Fess and, when requested, attaches
// generated snippets to the leading hits.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.Record, error) {
	logger.Section("Search Execution")

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query parameter is required", domain.ErrInvalidArgument)
	}

	pageSize := domain.DefaultPageSize
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: pageSize must be a positive integer", domain.ErrInvalidArgument)
	}
	if pageSize > s.limits.MaxPageSize {
		return nil, fmt.Errorf("%w: pageSize must be between 1 and %d, got %d",
			domain.ErrInvalidArgument, s.limits.MaxPageSize, pageSize)
	}
	if req.Start < 0 {
		return nil, fmt.Errorf("%w: start must be a non-negative integer", domain.ErrInvalidArgument)
	}

	// Snippet arguments are checked before any request is sent.
	var params domain.SnippetParams
	if req.Snippets {
		var err error
		params, err = ClampSnippetArgs(req.Snippet, s.limits)
		if err != nil {
			return nil, err
		}
	}

	label := s.labels.DefaultLabel()
	if req.Label != nil {
		label = *req.Label
	}
	if err := s.labels.Validate(ctx, label); err != nil {
		return nil, err
	}
	filter := domain.LabelFilter(label)
	logger.Debug("Query: %q label=%s pageSize=%d start=%d", query, label, pageSize, req.Start)

	rec, err := s.engine.Search(ctx, domain.SearchParams{
		Query:       query,
		LabelFilter: filter,
		Start:       req.Start,
		Num:         pageSize,
		Sort:        req.Sort,
		Lang:        req.Lang,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := rec.Hits()
	for _, hit := range hits {
		delete(hit, "_id")
		if len(req.IncludeFields) > 0 {
			keepFields(hit, req.IncludeFields)
		}
	}

	if req.Snippets {
		rec[JobIDKey] = s.enrich(ctx, query, filter, hits, req.Snippet, params)
	}

	logger.Debug("search: hits=%d", rec.Count())
	return rec, nil
}

// enrich attaches snippets to the first params.Docs hits concurrently and
// returns the id of the job tracking it. A failing hit gets an error entry
// and does not affect the others.
func (s *SearchService) enrich(
	ctx context.Context,
	query, filter string,
	hits []map[string]any,
	args domain.SnippetArgs,
	params domain.SnippetParams,
) string {
	if len(hits) > params.Docs {
		hits = hits[:params.Docs]
	}
	terms := snippet.ExtractTerms(query)
	opts := snippet.Options{
		WindowChars:    params.SizeChars,
		MaxFragments:   params.Fragments,
		ScanMaxChars:   params.ScanMaxChars,
		OpenTag:        params.TagPre,
		CloseTag:       params.TagPost,
		MatchCapFactor: params.MatchCapFactor,
	}

	job := s.jobs.Start(JobKindSnippets, len(hits))
	started := time.Now()
	var completed atomic.Int64

	var g errgroup.Group
	g.SetLimit(max(s.limits.MaxInFlightRequests, 1))
	for _, hit := range hits {
		g.Go(func() error {
			defer func() {
				s.jobs.Progress(job.ID, int(completed.Add(1)), "")
			}()

			docID := domain.FieldText(hit["doc_id"])
			if docID == "" {
				return nil
			}
			text, err := s.engine.DocumentText(ctx, docID, filter)
			if err == nil {
				var snippets []string
				snippets, err = snippet.Generate(text, terms, opts)
				if err == nil {
					hit[SnippetsKey] = domain.SnippetResult{
						RequestedSizeChars: args.SizeChars,
						EffectiveSizeChars: params.SizeChars,
						RequestedFragments: args.Fragments,
						EffectiveFragments: params.Fragments,
						SourceField:        domain.SnippetSourceField,
						Snippets:           snippets,
						Clamped:            params.Clamped,
					}.Map()
					return nil
				}
			}
			logger.Warn("Failed to generate snippets for doc_id=%s: %v", docID, err)
			hit[SnippetsKey] = map[string]any{"error": err.Error()}
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(started)
	if s.longRunning > 0 && elapsed > s.longRunning {
		logger.Warn("snippet enrichment of %d hits took %s", len(hits), elapsed.Round(time.Millisecond))
	}
	s.jobs.Finish(job.ID, ctx.Err())
	return job.ID
}

// keepFields removes every field of hit except doc_id and fields.
func keepFields(hit map[string]any, fields []string) {
	keep := make(map[string]struct{}, len(fields)+1)
	keep["doc_id"] = struct{}{}
	for _, f := range fields {
		keep[f] = struct{}{}
	}
	for k := range hit {
		if _, ok := keep[k]; !ok {
			delete(hit, k)
		}
	}
}

// Suggest returns query suggestions within the default label scope.
func (s *SearchService) Suggest(ctx context.Context, req domain.SuggestRequest) (domain.Record, error) {
	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		return nil, fmt.Errorf("%w: prefix parameter is required", domain.ErrInvalidArgument)
	}
	num := domain.DefaultSuggestCount
	if req.Num != nil {
		num = *req.Num
	}
	if num < 1 {
		return nil, fmt.Errorf("%w: num must be a positive integer", domain.ErrInvalidArgument)
	}

	rec, err := s.engine.Suggest(ctx, domain.SuggestParams{
		Prefix: prefix,
		Label:  s.labels.DefaultFilter(),
		Num:    num,
		Fields: req.Fields,
		Lang:   req.Lang,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	logger.Debug("suggest: count=%d", len(rec.Hits()))
	return rec, nil
}

// PopularWords returns popular terms. A nil label uses the default scope.
func (s *SearchService) PopularWords(
	ctx context.Context, label *string, seed *int, field string,
) (domain.Record, error) {
	scope := s.labels.DefaultLabel()
	if label != nil {
		scope = *label
		if err := s.labels.Validate(ctx, scope); err != nil {
			return nil, err
		}
	}

	rec, err := s.engine.PopularWords(ctx, domain.PopularWordsParams{
		Label: domain.LabelFilter(scope),
		Seed:  seed,
		Field: field,
	})
	if err != nil {
		return nil, fmt.Errorf("popular words: %w", err)
	}
	return rec, nil
}

// Health reports the Fess server status.
func (s *SearchService) Health(ctx context.Context) (domain.Record, error) {
	rec, err := s.engine.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return rec, nil
}
