package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a caller-supplied parameter is malformed
	// or out of range. It is raised before any work is done.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoText indicates a document exists but the index holds no
	// extracted text for it (content, body and digest are all empty).
	ErrNoText = errors.New("no extracted text available")

	// ErrUnknownLabel indicates a label scope that is neither configured
	// nor known to Fess while strict label checking is on.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrInvalidConfig indicates the configuration file failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrContentDisabled indicates content retrieval is switched off.
	ErrContentDisabled = errors.New("content fetching is disabled")

	// ErrFessUnavailable indicates the Fess server could not be reached or
	// answered with a server-side error.
	ErrFessUnavailable = errors.New("fess unavailable")
)
