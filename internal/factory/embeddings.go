package factory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deskwatch/deskwatch/internal/config"
	"github.com/deskwatch/deskwatch/internal/embeddings"
	"github.com/deskwatch/deskwatch/internal/embeddings/ollama"
)

// NewEmbeddingProvider creates an embedding provider based on config.
// Launches an async warmup; returns the provider immediately.
func NewEmbeddingProvider(ctx context.Context, cfg *config.Config, log zerolog.Logger) embeddings.Provider {
	var provider embeddings.Provider

	switch cfg.EmbedProvider {
	case "", "ollama":
		provider = ollama.New(cfg.OllamaURL, cfg.EmbedModel, cfg.EmbedDim)
	default:
		log.Warn().Str("provider", cfg.EmbedProvider).Msg("unknown embedding provider; using ollama")
		provider = ollama.New(cfg.OllamaURL, cfg.EmbedModel, cfg.EmbedDim)
	}

	// Warm the model so the first ingest does not pay the load cost.
	go func() {
		warmupTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
		warmupCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
		defer cancel()

		if vec, err := provider.Embed(warmupCtx, "warmup"); err != nil || len(vec) == 0 {
			log.Warn().Err(err).Str("model", cfg.EmbedModel).Msg("embedding provider warmup failed")
		} else {
			log.Debug().Str("model", cfg.EmbedModel).Msg("embedding provider warmup completed")
		}
	}()

	return provider
}
