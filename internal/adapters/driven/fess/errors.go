package fess

import (
	"fmt"
	"net/http"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// StatusError is returned when Fess answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fess %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("fess %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap maps the status to a domain sentinel so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests, e.StatusCode >= 500:
		return domain.ErrFessUnavailable
	default:
		return nil
	}
}
