package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	maxWriteAttempts = 3
	writeRetryDelay  = 50 * time.Millisecond
)

type recordRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewRecordRepository returns the SQLite-backed [RecordRepository].
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *recordRepository) GetRecord(ctx context.Context, identityID string) (models.UserRecord, error) {
	log := r.logger

	if identityID == "" {
		return models.UserRecord{}, ErrEmptyIdentityID
	}

	query, args, err := selectRecordQuery(identityID)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row recordRow
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().
			Str("func", "recordRepository.GetRecord").
			Str("identity_id", identityID).
			Msg("no stored record, returning empty one")
		return models.NewUserRecord(identityID), nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Str("identity_id", identityID).
			Msg("failed to query record")
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rec, err := row.toRecord()
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Str("identity_id", identityID).
			Msg("failed to decode record")
		return models.UserRecord{}, err
	}

	return rec, nil
}

func (r *recordRepository) SaveTasks(ctx context.Context, identityID string, tasks []models.Task) error {
	encoded, err := tasksValue(tasks)
	if err != nil {
		return err
	}

	return r.upsert(ctx, "recordRepository.SaveTasks", identityID, []string{"tasks"}, []any{encoded})
}

func (r *recordRepository) SaveSettings(ctx context.Context, identityID string, settings models.Settings) error {
	return r.upsert(ctx, "recordRepository.SaveSettings", identityID,
		[]string{"theme", "auto_lock_minutes"},
		[]any{settings.Theme, settings.AutoLockMinutes},
	)
}

func (r *recordRepository) SaveVault(ctx context.Context, identityID string, vault models.VaultRecord) error {
	values, err := vaultValues(vault)
	if err != nil {
		return err
	}

	return r.upsert(ctx, "recordRepository.SaveVault", identityID, vaultColumns, values)
}

func (r *recordRepository) SaveTasksAndVault(ctx context.Context, identityID string, tasks []models.Task, vault models.VaultRecord) error {
	encodedTasks, err := tasksValue(tasks)
	if err != nil {
		return err
	}
	vaultVals, err := vaultValues(vault)
	if err != nil {
		return err
	}

	columns := append([]string{"tasks"}, vaultColumns...)
	values := append([]any{encodedTasks}, vaultVals...)

	err = r.upsertTx(ctx, "recordRepository.SaveTasksAndVault", identityID, columns, values)
	if err != nil {
		return err
	}

	r.logger.Debug().
		Str("func", "recordRepository.SaveTasksAndVault").
		Str("identity_id", identityID).
		Int("tasks", len(tasks)).
		Str("vault", vault.Kind().String()).
		Msg("tasks and vault saved")

	return nil
}

// SaveRecord writes every column of the record inside one transaction, so a
// task moving between the public list and the vault is never persisted in
// both places or in neither.
func (r *recordRepository) SaveRecord(ctx context.Context, record models.UserRecord) error {
	tasks, err := tasksValue(record.Tasks)
	if err != nil {
		return err
	}
	vault, err := vaultValues(record.Vault)
	if err != nil {
		return err
	}

	columns := append([]string{"tasks", "theme", "auto_lock_minutes"}, vaultColumns...)
	values := append([]any{tasks, record.Settings.Theme, record.Settings.AutoLockMinutes}, vault...)

	err = r.upsertTx(ctx, "recordRepository.SaveRecord", record.IdentityID, columns, values)
	if err != nil {
		return err
	}

	r.logger.Debug().
		Str("func", "recordRepository.SaveRecord").
		Str("identity_id", record.IdentityID).
		Int("tasks", len(record.Tasks)).
		Str("vault", record.Vault.Kind().String()).
		Msg("record saved")

	return nil
}

// upsertTx runs the upsert in a transaction, retrying while the database
// reports itself busy.
func (r *recordRepository) upsertTx(ctx context.Context, fn, identityID string, columns []string, values []any) error {
	if identityID == "" {
		return ErrEmptyIdentityID
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = r.upsertTxOnce(ctx, fn, identityID, columns, values)
		if err == nil || attempt == maxWriteAttempts || !r.retryable(err) {
			return err
		}

		r.logger.Warn().
			Str("func", fn).
			Str("identity_id", identityID).
			Int("attempt", attempt).
			Err(err).
			Msg("database busy, retrying write")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * writeRetryDelay):
		}
	}
}

func (r *recordRepository) upsertTxOnce(ctx context.Context, fn, identityID string, columns []string, values []any) error {
	log := r.logger

	query, args, err := upsertRecordQuery(identityID, columns, values, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("failed to write record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRecordNotSaved
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *recordRepository) upsert(ctx context.Context, fn, identityID string, columns []string, values []any) error {
	log := r.logger

	if identityID == "" {
		return ErrEmptyIdentityID
	}

	query, args, err := upsertRecordQuery(identityID, columns, values, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("failed to execute upsert")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn().
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("upsert affected no rows")
		return ErrRecordNotSaved
	}

	return nil
}
