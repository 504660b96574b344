package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

const uriScheme = "fess://"

const contentSuffix = "/content"

// uriPrefix is the resource namespace of this domain.
func (s *Server) uriPrefix() string {
	return uriScheme + s.cfg.Domain.ID + "/"
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: s.uriPrefix() + "doc/{doc_id}",
		Name:        "document",
		Description: docDescription,
		MIMEType:    "application/json",
	}, s.handleDocResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: s.uriPrefix() + "doc/{doc_id}" + contentSuffix,
		Name:        "document-content",
		Description: s.docContentDescription(),
		MIMEType:    "text/plain",
	}, s.handleDocContentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         s.uriPrefix() + "labels",
		Name:        "labels",
		Description: labelsDescription,
		MIMEType:    "application/json",
	}, s.handleLabelsResource)
}

// handleDocResource returns the indexed record of a document.
func (s *Server) handleDocResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	docID := s.extractDocID(uri, "")
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	record, err := s.ports.Content.Metadata(ctx, docID)
	if err != nil {
		return nil, resourceError(uri, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocContentResource returns the extracted text of a document.
func (s *Server) handleDocContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	docID := s.extractDocID(uri, contentSuffix)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	text, err := s.ports.Content.Resource(ctx, docID)
	if err != nil {
		return nil, resourceError(uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// handleLabelsResource returns the label catalog.
func (s *Server) handleLabelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	catalog, err := s.ports.Labels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling labels: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func resourceError(uri string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return mcp.ResourceNotFoundError(uri)
	}
	return err
}

// extractDocID extracts the document ID from a URI like
// fess://{domainId}/doc/{docId}{suffix}.
func (s *Server) extractDocID(uri, suffix string) string {
	prefix := s.uriPrefix() + "doc/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	uri = strings.TrimPrefix(uri, prefix)

	if suffix != "" {
		if !strings.HasSuffix(uri, suffix) {
			return ""
		}
		uri = strings.TrimSuffix(uri, suffix)
	}

	if uri == "" || strings.Contains(uri, "/") {
		return ""
	}
	return uri
}
