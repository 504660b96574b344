package domain

// ContentMetadata describes server limits that applied to a content response.
type ContentMetadata struct {
	MaxChunkSize int `json:"max_chunk_size"`
}

// ContentChunk is a character window of a document's extracted text.
type ContentChunk struct {
	Content     string          `json:"content"`
	HasMore     bool            `json:"hasMore"`
	Offset      int             `json:"offset"`
	Length      int             `json:"length"`
	TotalLength int             `json:"totalLength"`
	Metadata    ContentMetadata `json:"metadata"`
}

// ContentDocument is a document's extracted text, truncated to the chunk limit.
type ContentDocument struct {
	Content     string          `json:"content"`
	TotalLength int             `json:"totalLength"`
	Truncated   bool            `json:"truncated"`
	Metadata    ContentMetadata `json:"metadata"`
	Message     string          `json:"message,omitempty"`
}
