// Package fess implements the driven.SearchEngine port against the Fess
// REST API (/api/v1). It also provides LabelCache, a TTL cache over the
// labels endpoint implementing driven.LabelSource.
package fess
