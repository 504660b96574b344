package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
	"github.com/Buttje/mcp-fess/internal/core/ports/driving"
	"github.com/Buttje/mcp-fess/internal/core/snippet"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

const docIDRequired = "docId parameter is required. " +
	"Please use the 'search' tool first to obtain a valid document ID."

// ContentService serves extracted document text from the index.
type ContentService struct {
	engine   driven.SearchEngine
	labels   *LabelService
	maxChunk int
	enabled  bool
}

// NewContentService creates a new content service.
func NewContentService(cfg domain.Config, engine driven.SearchEngine, labels *LabelService) *ContentService {
	return &ContentService{
		engine:   engine,
		labels:   labels,
		maxChunk: cfg.Limits.MaxChunkBytes,
		enabled:  cfg.ContentFetch.Enabled,
	}
}

// Chunk returns text[offset:offset+length] counted in characters.
func (s *ContentService) Chunk(
	ctx context.Context, docID string, offset int, length *int,
) (domain.ContentChunk, error) {
	if !s.enabled {
		return domain.ContentChunk{}, domain.ErrContentDisabled
	}
	if docID == "" {
		return domain.ContentChunk{}, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, docIDRequired)
	}
	if offset < 0 {
		return domain.ContentChunk{}, fmt.Errorf(
			"%w: offset must be a non-negative integer, got %d. Use offset=0 to start reading from the beginning",
			domain.ErrInvalidArgument, offset)
	}
	n := s.maxChunk
	if length != nil {
		n = *length
	}
	if n < 1 {
		return domain.ContentChunk{}, fmt.Errorf(
			"%w: length must be a positive integer, got %d. Maximum recommended length is %d bytes",
			domain.ErrInvalidArgument, n, s.maxChunk)
	}
	if n > s.maxChunk {
		return domain.ContentChunk{}, fmt.Errorf("%w: requested chunk size %d exceeds server limit %d",
			domain.ErrInvalidArgument, n, s.maxChunk)
	}

	text, err := s.text(ctx, docID)
	if err != nil {
		return domain.ContentChunk{}, fmt.Errorf(
			"fetch_content_chunk failed to load document %s: %w. "+
				"Please verify the document ID using 'search' tool, or check offset/length parameters",
			docID, err)
	}

	runes := []rune(text)
	total := len(runes)
	var chunk string
	hasMore := false
	if offset < total {
		end := offset + min(n, total-offset)
		chunk = string(runes[offset:end])
		hasMore = n < total-offset
	}

	result := domain.ContentChunk{
		Content:     chunk,
		HasMore:     hasMore,
		Offset:      offset,
		Length:      utf8.RuneCountInString(chunk),
		TotalLength: total,
		Metadata:    domain.ContentMetadata{MaxChunkSize: s.maxChunk},
	}
	logger.Debug("fetch_content_chunk doc_id=%s offset=%d length=%d hasMore=%t totalLength=%d",
		docID, offset, result.Length, result.HasMore, total)
	return result, nil
}

// ByID returns the document text cut to the maximum chunk size in bytes.
func (s *ContentService) ByID(ctx context.Context, docID string) (domain.ContentDocument, error) {
	if !s.enabled {
		return domain.ContentDocument{}, domain.ErrContentDisabled
	}
	if docID == "" {
		return domain.ContentDocument{}, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, docIDRequired)
	}

	text, err := s.text(ctx, docID)
	if err != nil {
		return domain.ContentDocument{}, fmt.Errorf(
			"fetch_content_by_id failed to load document %s: %w. Please verify the document ID using 'search' tool",
			docID, err)
	}

	total := utf8.RuneCountInString(text)
	content, truncated := snippet.TruncateUTF8(text, s.maxChunk)
	result := domain.ContentDocument{
		Content:     content,
		TotalLength: total,
		Truncated:   truncated,
		Metadata:    domain.ContentMetadata{MaxChunkSize: s.maxChunk},
	}
	if truncated {
		result.Message = fmt.Sprintf(
			"Content was truncated at %d bytes. Full document is %d characters. "+
				"Use fetch_content_chunk tool with docId='%s' to retrieve additional sections.",
			s.maxChunk, total, docID)
	}
	logger.Debug("fetch_content_by_id doc_id=%s totalLength=%d truncated=%t", docID, total, truncated)
	return result, nil
}

// Resource returns the document text for a resource read, with a notice
// appended when it was truncated.
func (s *ContentService) Resource(ctx context.Context, docID string) (string, error) {
	if !s.enabled {
		return "", domain.ErrContentDisabled
	}
	text, err := s.text(ctx, docID)
	if err != nil {
		return "", err
	}
	content, truncated := snippet.TruncateUTF8(text, s.maxChunk)
	if truncated {
		content += fmt.Sprintf("\n\n[Content truncated at %d bytes. "+
			"Use fetch_content_chunk tool with docId='%s' to retrieve additional sections.]", s.maxChunk, docID)
	}
	return content, nil
}

// Metadata returns the indexed record for docID in the default label scope.
func (s *ContentService) Metadata(ctx context.Context, docID string) (domain.Record, error) {
	if docID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, docIDRequired)
	}
	return s.engine.Document(ctx, docID, s.labels.DefaultFilter())
}

func (s *ContentService) text(ctx context.Context, docID string) (string, error) {
	text, err := s.engine.DocumentText(ctx, docID, s.labels.DefaultFilter())
	if err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrNoText) {
		logger.Error("Failed to fetch text for %s: %v", docID, err)
	}
	return text, err
}
