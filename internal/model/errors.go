package model

import "errors"

var (
	// ErrValidation marks malformed or incomplete client input. No state is
	// mutated on this path.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a query against an empty index; not a fault.
	ErrNotFound = errors.New("not found")

	// ErrIndexUnavailable marks a vector index failure. When returned from
	// ingestion no metadata has been written.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrStoreUnavailable marks a metadata store failure. When returned from
	// ingestion the vector may already be durable (accepted orphan).
	ErrStoreUnavailable = errors.New("metadata store unavailable")
)
