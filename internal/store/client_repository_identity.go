package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type identityRepository struct {
	*DB
	logger *logger.Logger
}

// NewIdentityRepository returns the SQLite-backed [IdentityRepository].
func NewIdentityRepository(db *DB, logger *logger.Logger) IdentityRepository {
	return &identityRepository{DB: db, logger: logger}
}

func (r *identityRepository) GetCurrentIdentity(ctx context.Context) (models.Identity, error) {
	query, args, err := selectCurrentIdentityQuery()
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var identity models.Identity
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&identity.ID, &identity.Name, &identity.Email, &identity.Picture)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, ErrNoCurrentIdentity
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "identityRepository.GetCurrentIdentity").
			Msg("failed to scan identity row")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return identity, nil
}

func (r *identityRepository) SetCurrentIdentity(ctx context.Context, identity models.Identity) error {
	log := r.logger

	if identity.ID == "" {
		return ErrEmptyIdentityID
	}

	clearQuery, clearArgs, err := clearCurrentIdentityQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	upsertQuery, upsertArgs, err := upsertIdentityQuery(identity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.SetCurrentIdentity").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		log.Err(err).Str("func", "identityRepository.SetCurrentIdentity").Msg("failed to clear current identity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).
			Str("func", "identityRepository.SetCurrentIdentity").
			Str("identity_id", identity.ID).
			Msg("failed to store identity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *identityRepository) ClearCurrentIdentity(ctx context.Context) error {
	query, args, err := clearCurrentIdentityQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "identityRepository.ClearCurrentIdentity").
			Msg("failed to clear current identity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
