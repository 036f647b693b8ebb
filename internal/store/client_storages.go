package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// Records persists task lists, settings and private vaults.
	Records RecordRepository

	// Identities remembers the signed-in identity.
	Identities IdentityRepository

	// Feedback keeps submitted feedback messages.
	Feedback FeedbackRepository

	closer io.Closer
}

// NewClientStorages initialises the client storage layer. The backend is
// selected by cfg.DB.DSN:
//   - a path ending in ".json" opens a [FileStorage];
//   - anything else (including ":memory:") opens SQLite and runs pending
//     migrations.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	if IsFileDSN(cfg.DB.DSN) {
		fs, err := NewFileStorage(cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		return &ClientStorages{
			Records:    fs,
			Identities: fs,
			Feedback:   fs,
			closer:     fs,
		}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLClientStorages(db, logger), nil
}

// NewSQLClientStorages wires the SQL repositories on an already migrated db.
func NewSQLClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Records:    NewRecordRepository(db, logger),
		Identities: NewIdentityRepository(db, logger),
		Feedback:   NewFeedbackRepository(db, logger),
		closer:     db,
	}
}

// Close releases the underlying database or file handle.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
