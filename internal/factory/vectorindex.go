package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/deskwatch/deskwatch/internal/config"
	"github.com/deskwatch/deskwatch/internal/vectorindex"
)

// NewVectorIndex creates the Milvus-backed vector index and launches an
// async collection bootstrap so startup is not blocked on Milvus.
func NewVectorIndex(ctx context.Context, cfg *config.Config, log zerolog.Logger) (vectorindex.Index, error) {
	if cfg.MilvusAddr == "" {
		return nil, fmt.Errorf("vector index address not configured")
	}

	idx, err := vectorindex.NewMilvusIndex(ctx, cfg.MilvusAddr, cfg.MilvusCollection, cfg.EmbedDim)
	if err != nil {
		return nil, err
	}

	if b, ok := idx.(vectorindex.Bootstrapper); ok {
		go func() {
			bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
			bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
			defer cancel()

			if err := b.Bootstrap(bootstrapCtx); err != nil {
				log.Warn().Err(err).Str("addr", cfg.MilvusAddr).Msg("vector index bootstrap failed")
			} else {
				log.Debug().Str("collection", cfg.MilvusCollection).Msg("vector index bootstrap completed")
			}
		}()
	}

	return idx, nil
}
