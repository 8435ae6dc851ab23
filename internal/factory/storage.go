package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deskwatch/deskwatch/internal/config"
	storepkg "github.com/deskwatch/deskwatch/internal/store"
	storepg "github.com/deskwatch/deskwatch/internal/store/postgres"
	storelite "github.com/deskwatch/deskwatch/internal/store/sqlite"
)

// NewStore selects the metadata store adapter based on cfg.DBDriver and
// ensures its schema exists.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := storelite.EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("metadata store ready")
		return storelite.NewWithDB(db), nil
	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("driver", "postgres").Msg("metadata store ready")
		return storepg.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
