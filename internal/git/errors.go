package git

import "github.com/pkg/errors"

// Sentinel errors for repository access failures. Callers match with
// errors.Is; the wrapped message carries the offending name or id.
var (
	// ErrUnresolvedReference indicates a ref or revision name that does
	// not resolve to a commit in the repository.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrNotFound indicates a commit object expected by id is missing.
	// This is treated as repository corruption and aborts the operation.
	ErrNotFound = errors.New("commit object not found")
)
