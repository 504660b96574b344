package cli

import (
	"time"

	"github.com/Buttje/mcp-fess/internal/adapters/driven/config/file"
	"github.com/Buttje/mcp-fess/internal/adapters/driven/fess"
	"github.com/Buttje/mcp-fess/internal/adapters/driving/mcp"
	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/services"
)

// app holds the wired services for one configuration.
type app struct {
	cfg     domain.Config
	store   *file.ConfigStore
	labels  *services.LabelService
	jobs    *services.JobService
	search  *services.SearchService
	content *services.ContentService
}

// loadApp reads the configuration and wires the services.
func loadApp() (*app, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, store), nil
}

func newApp(cfg domain.Config, store *file.ConfigStore) *app {
	client := fess.NewClient(fess.Config{
		BaseURL:           cfg.FessBaseURL,
		Timeout:           cfg.Timeouts.FessRequestTimeout(),
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})
	cache := fess.NewLabelCache(client, fess.WithTTL(time.Duration(cfg.LabelCacheTTLSeconds)*time.Second))

	labels := services.NewLabelService(cfg, cache)
	jobs := services.NewJobService(services.DefaultJobHistory)

	return &app{
		cfg:     cfg,
		store:   store,
		labels:  labels,
		jobs:    jobs,
		search:  services.NewSearchService(cfg, client, labels, jobs),
		content: services.NewContentService(cfg, client, labels),
	}
}

func (a *app) ports() *mcp.Ports {
	return &mcp.Ports{
		Search:  a.search,
		Labels:  a.labels,
		Content: a.content,
		Jobs:    a.jobs,
	}
}
