package repositories

import "errors"

var (
	// ErrNotFound means no matching row survived the query.
	ErrNotFound = errors.New("record not found")

	// ErrRowPolicy means the row exists but the caller's identity or the
	// row's current state does not satisfy the write predicate. It is the
	// local stand-in for the remote store's row-level policy rejection.
	ErrRowPolicy = errors.New("row access policy rejected the operation")
)
