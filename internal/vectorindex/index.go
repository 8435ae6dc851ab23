package vectorindex

import (
	"context"

	"github.com/deskwatch/deskwatch/internal/model"
)

// Index provides approximate nearest-neighbor storage over fixed-dimension
// vectors keyed by an index-assigned integer id.
type Index interface {
	// Insert adds a vector and returns its assigned key. The key is durable
	// when Insert returns.
	Insert(ctx context.Context, vec []float32) (int64, error)

	// Search returns up to topK nearest neighbors in rank order.
	Search(ctx context.Context, vec []float32, topK int) ([]model.SearchHit, error)

	// Count reports the number of stored vectors.
	Count(ctx context.Context) (int64, error)

	// EnsureBuilt builds the search structure if absent. Idempotent and
	// collection-wide; concurrent callers may race harmlessly.
	EnsureBuilt(ctx context.Context) error

	// Load makes the index servable for queries. Idempotent.
	Load(ctx context.Context) error
}

// Bootstrapper is implemented by indexes that need one-time collection setup
// before first use.
type Bootstrapper interface {
	Bootstrap(ctx context.Context) error
}

// HealthPinger is optionally implemented by an Index to expose specialized
// health check logic. Returns nil when healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
