package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deskwatch/deskwatch/internal/model"
	"github.com/deskwatch/deskwatch/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
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
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS usage_records (
        vector_key INTEGER PRIMARY KEY,
        user_ip TEXT NOT NULL,
        user_name TEXT NOT NULL,
        window_title TEXT NOT NULL,
        process_name TEXT NOT NULL,
        timestamp TIMESTAMP NOT NULL,
        cpu_usage REAL NOT NULL,
        ram_usage REAL NOT NULL,
        duration REAL NOT NULL
    );`)
	return err
}

// NewWithDB constructs a SQLite-backed store.Store. The schema must already
// be ensured.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Insert(ctx context.Context, r *model.UsageRecord) (*model.UsageRecord, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO usage_records
            (vector_key, user_ip, user_name, window_title, process_name, timestamp, cpu_usage, ram_usage, duration)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, r.VectorKey, r.UserIP, r.UserName, r.WindowTitle, r.ProcessName,
		r.Timestamp.UTC().Format(time.RFC3339Nano), r.CPUUsage, r.RAMUsage, r.Duration)
	if err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

func (s *sqliteStore) ByVectorKeys(ctx context.Context, keys []int64) ([]*model.UsageRecord, error) {
	if len(keys) == 0 {
		return []*model.UsageRecord{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT vector_key, user_ip, user_name, window_title, process_name, timestamp, cpu_usage, ram_usage, duration
        FROM usage_records WHERE vector_key IN (`+placeholders+`)
    `, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.UsageRecord{}
	for rows.Next() {
		var r model.UsageRecord
		var ts string
		if err := rows.Scan(&r.VectorKey, &r.UserIP, &r.UserName, &r.WindowTitle, &r.ProcessName,
			&ts, &r.CPUUsage, &r.RAMUsage, &r.Duration); err != nil {
			return nil, err
		}
		if r.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("stored timestamp %q: %w", ts, err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// HealthPing implements store.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
