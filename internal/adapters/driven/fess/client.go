package fess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchEngine = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// API paths relative to the base URL.
const (
	pathDocuments    = "/api/v1/documents"
	pathSuggestWords = "/api/v1/suggest-words"
	pathPopularWords = "/api/v1/popular-words"
	pathLabels       = "/api/v1/labels"
	pathHealth       = "/api/v1/health"
)

// textFields are the index fields holding extracted text, in priority order.
var textFields = []string{"content", "body", "digest"}

// Config holds configuration for the Fess client.
type Config struct {
	// BaseURL is the Fess server root, e.g. http://localhost:8080.
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond and Burst configure outbound throttling.
	// A non-positive rate disables throttling.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the Fess REST API.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewClient creates a new Fess client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// SetHTTPClient replaces the underlying HTTP client. Useful for testing.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

// BaseURL returns the Fess server root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search runs a full-text query against /api/v1/documents.
func (c *Client) Search(ctx context.Context, params domain.SearchParams) (domain.Record, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("start", strconv.Itoa(params.Start))
	q.Set("num", strconv.Itoa(params.Num))
	if params.LabelFilter != "" {
		q.Set("fields.label", params.LabelFilter)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Lang != "" {
		q.Set("lang", params.Lang)
	}

	rec, err := c.get(ctx, "search", pathDocuments, q)
	if err != nil {
		return nil, err
	}
	logger.Debug("fess search: hits=%d", rec.Count())
	return rec, nil
}

// Suggest returns completions from /api/v1/suggest-words.
func (c *Client) Suggest(ctx context.Context, params domain.SuggestParams) (domain.Record, error) {
	q := url.Values{}
	q.Set("q", params.Prefix)
	q.Set("num", strconv.Itoa(params.Num))
	if params.Label != "" {
		q.Set("label", params.Label)
	}
	if len(params.Fields) > 0 {
		q.Set("fields", strings.Join(params.Fields, ","))
	}
	if params.Lang != "" {
		q.Set("lang", params.Lang)
	}
	return c.get(ctx, "suggest", pathSuggestWords, q)
}

// PopularWords returns terms from /api/v1/popular-words.
func (c *Client) PopularWords(ctx context.Context, params domain.PopularWordsParams) (domain.Record, error) {
	q := url.Values{}
	if params.Label != "" {
		q.Set("label", params.Label)
	}
	if params.Seed != nil {
		q.Set("seed", strconv.Itoa(*params.Seed))
	}
	if params.Field != "" {
		q.Set("field", params.Field)
	}
	return c.get(ctx, "popular words", pathPopularWords, q)
}

// Labels returns the labels defined in Fess.
func (c *Client) Labels(ctx context.Context) ([]domain.FessLabel, error) {
	rec, err := c.get(ctx, "list labels", pathLabels, nil)
	if err != nil {
		return nil, err
	}
	hits := rec.Hits()
	labels := make([]domain.FessLabel, 0, len(hits))
	for _, h := range hits {
		value := domain.FieldText(h["value"])
		if value == "" {
			continue
		}
		labels = append(labels, domain.FessLabel{Value: value, Name: domain.FieldText(h["name"])})
	}
	return labels, nil
}

// Health returns the Fess server status.
func (c *Client) Health(ctx context.Context) (domain.Record, error) {
	return c.get(ctx, "health", pathHealth, nil)
}

// Document returns the indexed record for docID.
func (c *Client) Document(ctx context.Context, docID, labelFilter string) (domain.Record, error) {
	rec, err := c.Search(ctx, domain.SearchParams{
		Query:       "doc_id:" + docID,
		LabelFilter: labelFilter,
		Num:         1,
	})
	if err != nil {
		return nil, err
	}
	hits := rec.Hits()
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, docID)
	}
	return domain.Record(hits[0]), nil
}

// DocumentText returns the extracted text of docID from the index.
// Fields are tried in the order content, body, digest.
func (c *Client) DocumentText(ctx context.Context, docID, labelFilter string) (string, error) {
	doc, err := c.Document(ctx, docID, labelFilter)
	if err != nil {
		return "", err
	}
	for _, field := range textFields {
		if text := doc.String(field); text != "" {
			logger.Debug("fess text: doc_id=%s field=%s length=%d", docID, field, len([]rune(text)))
			return text, nil
		}
	}
	return "", fmt.Errorf("%w: doc_id=%s; ensure Fess stores extracted content in the index",
		domain.ErrNoText, docID)
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) (domain.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fess %s: %w", op, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	logger.Debug("fess request: GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fess %s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fess %s: %w: %w", op, domain.ErrFessUnavailable, err)
	}
	defer resp.Body.Close()

	logger.Debug("fess response: GET %s status=%d", path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var rec domain.Record
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("fess %s: decode response: %w", op, err)
	}
	if rec == nil {
		rec = domain.Record{}
	}
	return rec, nil
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
