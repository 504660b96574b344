package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
	"github.com/Buttje/mcp-fess/internal/core/ports/driving"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Ensure LabelService implements the interface.
var _ driving.LabelService = (*LabelService)(nil)

// unconfiguredDescription describes Fess labels missing from the config.
const unconfiguredDescription = "No description configured."

// LabelService merges configured label descriptors with Fess labels.
// Its configuration can be swapped at runtime with Reload.
type LabelService struct {
	source driven.LabelSource

	mu           sync.RWMutex
	labels       map[string]domain.LabelDescriptor
	strict       bool
	defaultLabel string
}

// NewLabelService creates a label service for cfg.
func NewLabelService(cfg domain.Config, source driven.LabelSource) *LabelService {
	s := &LabelService{source: source}
	s.Reload(cfg)
	return s
}

// Reload replaces the configured labels, strict mode and default label.
func (s *LabelService) Reload(cfg domain.Config) {
	labels := make(map[string]domain.LabelDescriptor, len(cfg.Labels)+1)
	for k, v := range cfg.Labels {
		labels[k] = v
	}
	if _, ok := labels[domain.LabelAll]; !ok {
		labels[domain.LabelAll] = domain.AllLabelDescriptor()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = labels
	s.strict = cfg.StrictLabels
	s.defaultLabel = cfg.EffectiveDefaultLabel()
}

// DefaultLabel returns the scope used when a request names none.
func (s *LabelService) DefaultLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultLabel
}

// DefaultFilter returns the Fess label filter for the default scope.
func (s *LabelService) DefaultFilter() string {
	return domain.LabelFilter(s.DefaultLabel())
}

// List returns configured labels first ("all" leading, the rest by value),
// then in non-strict mode any Fess labels that are not configured.
func (s *LabelService) List(ctx context.Context) (domain.LabelCatalog, error) {
	fessAvailable := true
	fessNames := make(map[string]string)
	fessLabels, err := s.source.Labels(ctx, false)
	if err != nil {
		logger.Warn("Failed to fetch labels from Fess: %v", err)
		fessAvailable = false
	}
	for _, l := range fessLabels {
		fessNames[l.Value] = l.Name
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]string, 0, len(s.labels))
	for v := range s.labels {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i] == domain.LabelAll || values[j] == domain.LabelAll {
			return values[i] == domain.LabelAll
		}
		return values[i] < values[j]
	})

	entries := make([]domain.LabelEntry, 0, len(values)+len(fessLabels))
	for _, v := range values {
		d := s.labels[v]
		_, present := fessNames[v]
		entries = append(entries, domain.LabelEntry{
			Value:           v,
			Name:            fessNames[v],
			Title:           d.Title,
			Description:     d.Description,
			Examples:        nonNil(d.Examples),
			IsConfigured:    true,
			IsPresentInFess: present || v == domain.LabelAll,
		})
	}

	if !s.strict {
		seen := make(map[string]struct{}, len(fessLabels))
		for _, l := range fessLabels {
			if _, ok := s.labels[l.Value]; ok {
				continue
			}
			if _, ok := seen[l.Value]; ok {
				continue
			}
			seen[l.Value] = struct{}{}
			title := l.Name
			if title == "" {
				title = l.Value
			}
			entries = append(entries, domain.LabelEntry{
				Value:           l.Value,
				Name:            l.Name,
				Title:           title,
				Description:     unconfiguredDescription,
				Examples:        []string{},
				IsConfigured:    false,
				IsPresentInFess: true,
			})
		}
	}

	logger.Debug("list_labels: %d labels, fessAvailable=%t", len(entries), fessAvailable)
	return domain.LabelCatalog{
		Labels:        entries,
		DefaultLabel:  s.defaultLabel,
		StrictLabels:  s.strict,
		FessAvailable: fessAvailable,
	}, nil
}

// Validate accepts "all", configured labels and labels known to Fess.
// Other labels fail with domain.ErrUnknownLabel in strict mode and are
// allowed with a warning otherwise.
func (s *LabelService) Validate(ctx context.Context, label string) error {
	if label == domain.LabelAll {
		return nil
	}

	s.mu.RLock()
	_, configured := s.labels[label]
	strict := s.strict
	s.mu.RUnlock()

	if configured {
		return nil
	}

	fessLabels, err := s.source.Labels(ctx, false)
	if err != nil {
		logger.Warn("Failed to validate label against Fess: %v", err)
	}
	for _, l := range fessLabels {
		if l.Value != label {
			continue
		}
		if strict {
			logger.Warn("Label '%s' exists in Fess but not in config. "+
				"Consider adding it to the labels configuration.", label)
		}
		return nil
	}

	if strict {
		return fmt.Errorf("%w '%s'. Call list_labels to see available labels", domain.ErrUnknownLabel, label)
	}
	logger.Warn("Label '%s' is not configured and may not exist in Fess. "+
		"Proceeding anyway (strictLabels=false).", label)
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
