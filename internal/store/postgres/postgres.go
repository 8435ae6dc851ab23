package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/deskwatch/deskwatch/internal/model"
	"github.com/deskwatch/deskwatch/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the usage_records table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS usage_records (
        vector_key BIGINT PRIMARY KEY,
        user_ip TEXT NOT NULL,
        user_name TEXT NOT NULL,
        window_title TEXT NOT NULL,
        process_name TEXT NOT NULL,
        timestamp TIMESTAMPTZ NOT NULL,
        cpu_usage DOUBLE PRECISION NOT NULL,
        ram_usage DOUBLE PRECISION NOT NULL,
        duration DOUBLE PRECISION NOT NULL
    )`)
	return err
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Insert(ctx context.Context, r *model.UsageRecord) (*model.UsageRecord, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO usage_records
            (vector_key, user_ip, user_name, window_title, process_name, timestamp, cpu_usage, ram_usage, duration)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, r.VectorKey, r.UserIP, r.UserName, r.WindowTitle, r.ProcessName,
		r.Timestamp, r.CPUUsage, r.RAMUsage, r.Duration)
	if err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

func (s *pgStore) ByVectorKeys(ctx context.Context, keys []int64) ([]*model.UsageRecord, error) {
	if len(keys) == 0 {
		return []*model.UsageRecord{}, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT vector_key, user_ip, user_name, window_title, process_name, timestamp, cpu_usage, ram_usage, duration
        FROM usage_records WHERE vector_key IN (`+strings.Join(placeholders, ",")+`)
    `, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.UsageRecord{}
	for rows.Next() {
		var r model.UsageRecord
		if err := rows.Scan(&r.VectorKey, &r.UserIP, &r.UserName, &r.WindowTitle, &r.ProcessName,
			&r.Timestamp, &r.CPUUsage, &r.RAMUsage, &r.Duration); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// HealthPing implements store.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
