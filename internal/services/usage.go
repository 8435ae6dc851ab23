package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deskwatch/deskwatch/internal/embeddings"
	"github.com/deskwatch/deskwatch/internal/metrics"
	"github.com/deskwatch/deskwatch/internal/model"
	"github.com/deskwatch/deskwatch/internal/store"
	"github.com/deskwatch/deskwatch/internal/vectorindex"
)

// SearchTopK is the fixed number of nearest neighbors returned per query.
const SearchTopK = 3

// UsageService orchestrates the ingest and search pipelines over the vector
// index and the metadata store. Dependencies are injected once at startup
// and shared across requests.
type UsageService struct {
	store    store.Store
	index    vectorindex.Index
	embedder embeddings.Provider
}

func NewUsageService(st store.Store, idx vectorindex.Index, emb embeddings.Provider) *UsageService {
	return &UsageService{store: st, index: idx, embedder: emb}
}

// Ingest validates a submission, embeds its window text, inserts the vector
// and then the metadata record, and ensures the index is built and loaded.
// It returns the index-assigned vector key.
//
// No step is rolled back on a later failure: a metadata insert failure after
// a successful vector insert leaves an orphaned vector behind.
func (s *UsageService) Ingest(ctx context.Context, sub *model.UsageSubmission) (int64, error) {
	start := time.Now()
	defer func() { metrics.IngestDuration.Observe(time.Since(start).Seconds()) }()

	rec, err := sub.Validate()
	if err != nil {
		metrics.IngestTotal.WithLabelValues("validation_error").Inc()
		return 0, err
	}

	vec, err := s.embedder.Embed(ctx, rec.EmbedText())
	if err != nil {
		metrics.IngestTotal.WithLabelValues("index_error").Inc()
		return 0, fmt.Errorf("embed window text: %w", err)
	}

	key, err := s.index.Insert(ctx, vec)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("index_error").Inc()
		return 0, fmt.Errorf("%w: insert vector: %v", model.ErrIndexUnavailable, err)
	}

	rec.VectorKey = key
	if _, err := s.store.Insert(ctx, rec); err != nil {
		// The vector is already durable; its metadata twin is not. Accepted
		// orphan, surfaced to the caller as a store failure.
		metrics.IngestTotal.WithLabelValues("store_error").Inc()
		log.Warn().Int64("vector_key", key).Err(err).Msg("metadata insert failed after vector insert; vector orphaned")
		return 0, fmt.Errorf("%w: insert record: %v", model.ErrStoreUnavailable, err)
	}

	if err := s.index.EnsureBuilt(ctx); err != nil {
		metrics.IngestTotal.WithLabelValues("index_error").Inc()
		return 0, fmt.Errorf("%w: build index: %v", model.ErrIndexUnavailable, err)
	}
	if err := s.index.Load(ctx); err != nil {
		metrics.IngestTotal.WithLabelValues("index_error").Inc()
		return 0, fmt.Errorf("%w: load index: %v", model.ErrIndexUnavailable, err)
	}

	metrics.IngestTotal.WithLabelValues("ok").Inc()
	log.Info().Int64("vector_key", key).Str("window_title", rec.WindowTitle).Msg("usage record ingested")
	return key, nil
}

// Search embeds the query, retrieves the nearest neighbors, and hydrates the
// matched records from the metadata store in one batched lookup.
//
// MatchedIDs preserves neighbor rank order; the hydrated records come back in
// store order and are not re-sorted to match.
func (s *UsageService) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	if query == "" {
		metrics.SearchTotal.WithLabelValues("validation_error").Inc()
		return nil, fmt.Errorf("missing 'query' parameter: %w", model.ErrValidation)
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("embed query: %w", err)
	}

	n, err := s.index.Count(ctx)
	if err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: count entities: %v", model.ErrIndexUnavailable, err)
	}
	if n == 0 {
		metrics.SearchTotal.WithLabelValues("empty_index").Inc()
		return nil, fmt.Errorf("no usage data indexed: %w", model.ErrNotFound)
	}

	if err := s.index.EnsureBuilt(ctx); err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: build index: %v", model.ErrIndexUnavailable, err)
	}
	if err := s.index.Load(ctx); err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: load index: %v", model.ErrIndexUnavailable, err)
	}

	hits, err := s.index.Search(ctx, vec, SearchTopK)
	if err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: search: %v", model.ErrIndexUnavailable, err)
	}

	result := &model.SearchResult{
		Query:      query,
		MatchedIDs: []int64{},
		Hits:       hits,
		Records:    []*model.UsageRecord{},
	}
	if len(hits) == 0 {
		metrics.SearchTotal.WithLabelValues("ok").Inc()
		return result, nil
	}

	for _, h := range hits {
		result.MatchedIDs = append(result.MatchedIDs, h.ID)
	}

	recs, err := s.store.ByVectorKeys(ctx, result.MatchedIDs)
	if err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: hydrate records: %v", model.ErrStoreUnavailable, err)
	}
	result.Records = recs

	metrics.SearchTotal.WithLabelValues("ok").Inc()
	return result, nil
}
