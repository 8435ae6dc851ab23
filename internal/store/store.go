package store

import (
	"context"

	"github.com/deskwatch/deskwatch/internal/model"
)

// Store exposes the metadata record operations required by the pipelines.
// Records are append-only: no update or delete path exists.
// Implementations live under internal/store/<driver>/.
type Store interface {
	// Insert persists a record, returning it with storage timestamps applied.
	// The record must already carry its vector key.
	Insert(ctx context.Context, r *model.UsageRecord) (*model.UsageRecord, error)

	// ByVectorKeys fetches all records whose vector key is in keys, as a
	// single batched lookup. Result order is store order, not keys order.
	ByVectorKeys(ctx context.Context, keys []int64) ([]*model.UsageRecord, error)
}

// HealthPinger is optionally implemented by a Store to expose specialized
// health check logic. Returns nil when healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
