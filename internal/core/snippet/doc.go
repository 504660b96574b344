// Package snippet generates highlighted excerpts from document text.
//
// It is the client-side replacement for search-engine highlight fragments:
// query strings are reduced to literal terms, match positions are located in a
// bounded prefix of the document, non-overlapping windows are cut around them
// and each window is rendered with highlight markup.
//
// All offsets are character (rune) offsets, never byte offsets. Every function
// in this package is pure and safe for concurrent use.
package snippet
