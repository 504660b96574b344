package fess

import (
	"context"
	"sync"
	"time"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Ensure LabelCache implements the interface.
var _ driven.LabelSource = (*LabelCache)(nil)

// DefaultLabelTTL is how long fetched labels stay fresh.
const DefaultLabelTTL = 5 * time.Minute

// LabelFetcher fetches labels from Fess.
type LabelFetcher interface {
	Labels(ctx context.Context) ([]domain.FessLabel, error)
}

// LabelCache caches Fess labels for a TTL and serves stale labels while
// Fess is unreachable.
type LabelCache struct {
	fetcher LabelFetcher
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	labels    []domain.FessLabel
	fetchedAt time.Time
}

// LabelCacheOption configures a LabelCache.
type LabelCacheOption func(*LabelCache)

// WithClock sets the clock used for expiry.
func WithClock(now func() time.Time) LabelCacheOption {
	return func(c *LabelCache) { c.now = now }
}

// WithTTL sets the freshness window. Non-positive values keep the default.
func WithTTL(ttl time.Duration) LabelCacheOption {
	return func(c *LabelCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewLabelCache creates a cache over fetcher.
func NewLabelCache(fetcher LabelFetcher, opts ...LabelCacheOption) *LabelCache {
	c := &LabelCache{
		fetcher: fetcher,
		ttl:     DefaultLabelTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Labels returns cached labels while fresh and non-empty, otherwise fetches.
// On fetch failure stale labels are returned; with nothing cached the
// error is returned alongside an empty list.
func (c *LabelCache) Labels(ctx context.Context, forceRefresh bool) ([]domain.FessLabel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !forceRefresh && len(c.labels) > 0 && c.now().Sub(c.fetchedAt) <= c.ttl {
		logger.Debug("labels: serving %d cached", len(c.labels))
		return c.snapshot(), nil
	}

	labels, err := c.fetcher.Labels(ctx)
	if err != nil {
		if len(c.labels) > 0 {
			logger.Warn("labels: fetch failed, serving stale cache: %v", err)
			return c.snapshot(), nil
		}
		logger.Warn("labels: fetch failed: %v", err)
		return []domain.FessLabel{}, err
	}

	c.labels = labels
	c.fetchedAt = c.now()
	return c.snapshot(), nil
}

// Invalidate drops the cached labels.
func (c *LabelCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = nil
	c.fetchedAt = time.Time{}
}

func (c *LabelCache) snapshot() []domain.FessLabel {
	out := make([]domain.FessLabel, len(c.labels))
	copy(out, c.labels)
	return out
}
