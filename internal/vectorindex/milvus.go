package vectorindex

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/rs/zerolog/log"

	"github.com/deskwatch/deskwatch/internal/model"
)

const (
	idField     = "id"
	vectorField = "vector"

	// IVF_FLAT parameterization, fixed for the collection.
	ivfNList  = 128
	ivfNProbe = 10
)

// milvusIndex implements Index using the Milvus Go client.
type milvusIndex struct {
	cli        client.Client
	collection string
	dim        int
}

// NewMilvusIndex connects to Milvus at addr and returns an Index over the
// named collection. The collection is created on demand by Bootstrap.
func NewMilvusIndex(ctx context.Context, addr, collection string, dim int) (Index, error) {
	cli, err := client.NewClient(ctx, client.Config{Address: addr})
	if err != nil {
		return nil, fmt.Errorf("milvus connect %s: %w", addr, err)
	}
	return &milvusIndex{cli: cli, collection: collection, dim: dim}, nil
}

// Bootstrap ensures the collection exists with the expected schema.
// Safe to call repeatedly.
func (m *milvusIndex) Bootstrap(ctx context.Context) error {
	has, err := m.cli.HasCollection(ctx, m.collection)
	if err != nil {
		return fmt.Errorf("has collection: %w", err)
	}
	if has {
		return nil
	}

	schema := entity.NewSchema().
		WithName(m.collection).
		WithDescription("app usage log vectors").
		WithField(entity.NewField().
			WithName(idField).
			WithDataType(entity.FieldTypeInt64).
			WithIsPrimaryKey(true).
			WithIsAutoID(true)).
		WithField(entity.NewField().
			WithName(vectorField).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(m.dim)))

	if err := m.cli.CreateCollection(ctx, schema, 1); err != nil {
		// A concurrent bootstrap may have won the race.
		if strings.Contains(err.Error(), "already exist") {
			return nil
		}
		return fmt.Errorf("create collection %s: %w", m.collection, err)
	}
	return nil
}

func (m *milvusIndex) Insert(ctx context.Context, vec []float32) (int64, error) {
	if len(vec) != m.dim {
		return 0, fmt.Errorf("vector dimension %d, want %d", len(vec), m.dim)
	}

	col := entity.NewColumnFloatVector(vectorField, m.dim, [][]float32{vec})
	ids, err := m.cli.Insert(ctx, m.collection, "", col)
	if err != nil {
		return 0, fmt.Errorf("milvus insert: %w", err)
	}
	idCol, ok := ids.(*entity.ColumnInt64)
	if !ok || idCol.Len() == 0 {
		return 0, fmt.Errorf("milvus insert returned no id column")
	}
	key := idCol.Data()[0]

	// Flush so the assigned key is durable before the metadata twin is written.
	if err := m.cli.Flush(ctx, m.collection, false); err != nil {
		return 0, fmt.Errorf("milvus flush: %w", err)
	}
	return key, nil
}

func (m *milvusIndex) Search(ctx context.Context, vec []float32, topK int) ([]model.SearchHit, error) {
	sp, err := entity.NewIndexIvfFlatSearchParam(ivfNProbe)
	if err != nil {
		return nil, fmt.Errorf("search params: %w", err)
	}

	results, err := m.cli.Search(ctx, m.collection, nil, "",
		[]string{idField},
		[]entity.Vector{entity.FloatVector(vec)},
		vectorField, entity.COSINE, topK, sp)
	if err != nil {
		return nil, fmt.Errorf("milvus search: %w", err)
	}

	var hits []model.SearchHit
	for _, r := range results {
		idCol, ok := r.IDs.(*entity.ColumnInt64)
		if !ok {
			continue
		}
		for i, id := range idCol.Data() {
			hit := model.SearchHit{ID: id}
			if i < len(r.Scores) {
				hit.Score = float64(r.Scores[i])
			}
			log.Debug().Int64("id", hit.ID).Float64("score", hit.Score).Msg("vector match")
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

func (m *milvusIndex) Count(ctx context.Context) (int64, error) {
	stats, err := m.cli.GetCollectionStatistics(ctx, m.collection)
	if err != nil {
		return 0, fmt.Errorf("collection statistics: %w", err)
	}
	n, err := strconv.ParseInt(stats["row_count"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse row_count %q: %w", stats["row_count"], err)
	}
	return n, nil
}

func (m *milvusIndex) EnsureBuilt(ctx context.Context) error {
	idxs, err := m.cli.DescribeIndex(ctx, m.collection, vectorField)
	if err == nil && len(idxs) > 0 {
		return nil
	}

	idx, err := entity.NewIndexIvfFlat(entity.COSINE, ivfNList)
	if err != nil {
		return fmt.Errorf("index params: %w", err)
	}
	if err := m.cli.CreateIndex(ctx, m.collection, vectorField, idx, false); err != nil {
		// Concurrent ingests race to build; a duplicate build is harmless.
		if strings.Contains(err.Error(), "already exist") {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	log.Info().Str("collection", m.collection).Msg("built vector index")
	return nil
}

func (m *milvusIndex) Load(ctx context.Context) error {
	if err := m.cli.LoadCollection(ctx, m.collection, false); err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	return nil
}

// HealthPing verifies connectivity to the Milvus server.
func (m *milvusIndex) HealthPing(ctx context.Context) error {
	_, err := m.cli.GetVersion(ctx)
	return err
}
