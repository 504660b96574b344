package mcp

import (
	"fmt"
	"strings"
)

// domainBlock identifies the knowledge domain at the top of server
// instructions.
func (s *Server) domainBlock() string {
	var b strings.Builder
	b.WriteString("[Knowledge Domain]\n")
	fmt.Fprintf(&b, "id: %s\n", s.cfg.Domain.ID)
	fmt.Fprintf(&b, "name: %s\n", s.cfg.Domain.Name)
	if s.cfg.Domain.Description != "" {
		fmt.Fprintf(&b, "description: %s\n", s.cfg.Domain.Description)
	}
	fmt.Fprintf(&b, "fessLabel: %s", s.cfg.EffectiveDefaultLabel())
	return b.String()
}

func (s *Server) workflowText() string {
	return fmt.Sprintf(`**Efficient agent workflow:**

1. (Optional) Call %[1]s to pick a label scope if you need to restrict the search space.
2. Call %[2]s to get relevant hits and collect doc_ids.
3. Call %[3]s (preferred) or %[4]s to read extracted UTF-8 text evidence from the index.
4. Refine the query using evidence; optionally use %[5]s and %[6]s to expand or pivot.`,
		"`"+s.toolName("list_labels")+"`",
		"`"+s.toolName("search")+"`",
		"`"+s.toolName("fetch_content_chunk")+"`",
		"`"+s.toolName("fetch_content_by_id")+"`",
		"`"+s.toolName("suggest")+"`",
		"`"+s.toolName("popular_words")+"`",
	)
}

const textSourceText = "**Text source:** Index fields only (priority: `content`, then `body`, then `digest`). " +
	"No origin URL fetch."

func (s *Server) limitsText() string {
	return fmt.Sprintf("**Maximum chunk size:** %d bytes.", s.cfg.Limits.MaxChunkBytes)
}

// instructions are sent to clients during initialisation.
func (s *Server) instructions() string {
	return s.domainBlock() + "\n\n" + s.workflowText()
}

func (s *Server) searchDescription() string {
	l := s.cfg.Limits
	return fmt.Sprintf(`Search the Fess index and return ranked document hits.
Use this first to turn a keyword or question into a shortlist of candidate documents (capture doc_id).

%s

%s

**Note:** Search hits may include only short summary fields. For substantial text evidence, use the content fetch tools or resources.

**Performance:** Use include_fields to limit the payload to the fields you need.

**Snippets (optional):** Set snippets=true to attach generated text snippets to the leading hits under mcp_snippets.
Snippets are built by this server from index text, not Fess highlight fragments.
page_size may be at most %d. snippet_size_chars is clamped to [%d, %d] (default %d),
snippet_fragments to at most %d (default %d), snippet_docs to at most %d (default %d).
snippet_scan_max_chars defaults to %d. Use 'all' as label to search the whole index.`,
		s.domainBlock(), s.workflowText(),
		l.MaxPageSize, l.SnippetMinChars, l.SnippetMaxChars, l.SnippetDefaultChars,
		l.SnippetMaxFragments, l.SnippetDefaultFragments, l.SnippetMaxDocs, l.SnippetDefaultDocs,
		l.SnippetScanMaxChars)
}

const suggestDescription = `Get query suggestions based on the index vocabulary.
Use after reviewing evidence to generate grounded query expansions (synonyms, prefixes, near-terms).`

const popularWordsDescription = `Get popular words from the index.
Use to discover dominant vocabulary for pivots, filters and follow-up queries.`

const listLabelsDescription = `List available label scopes, with descriptions and examples when configured and whether each label exists in Fess.
Use this first when query intent is unclear or you need a constrained search scope.`

const healthDescription = "Check the health status of the underlying Fess server."

const jobGetDescription = `Retrieve progress information for a long-running operation.
Snippet-enriched searches return their job id in mcp_job_id.`

func (s *Server) fetchByIDDescription() string {
	return fmt.Sprintf(`Fetch extracted UTF-8 text for a document from the Fess index in one call (no origin URL fetch).
Use when the document is expected to fit within the maximum chunk size.
Longer documents are truncated; use %s to traverse them.

%s
%s

Returns JSON with content, totalLength and truncated.`,
		"`"+s.toolName("fetch_content_chunk")+"`", textSourceText, s.limitsText())
}

func (s *Server) fetchChunkDescription() string {
	return fmt.Sprintf(`Fetch a window of extracted UTF-8 text for a document from the Fess index (no origin URL fetch).
Use this after search when you need substantial evidence.

**Chunking strategy:**

* Start with offset=0.
* Request a length up to the maximum chunk size.
* While hasMore=true, set offset = offset + length and call again.

%s
%s

Returns JSON with content, hasMore, offset, length and totalLength.`, textSourceText, s.limitsText())
}

func (s *Server) docContentDescription() string {
	return "Document extracted text (index-only), up to the maximum chunk size.\n" +
		"For longer documents use `" + s.toolName("fetch_content_chunk") + "`.\n\n" + s.limitsText()
}

const docDescription = "Document metadata for a given doc_id. " +
	"Use doc/{doc_id}/content or the content fetch tools to retrieve extracted text."

const labelsDescription = "Available Fess labels with descriptions."
