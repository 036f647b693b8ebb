package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type feedbackRepository struct {
	*DB
	logger *logger.Logger
}

// NewFeedbackRepository returns the SQLite-backed [FeedbackRepository].
func NewFeedbackRepository(db *DB, logger *logger.Logger) FeedbackRepository {
	return &feedbackRepository{DB: db, logger: logger}
}

func (r *feedbackRepository) SaveFeedback(ctx context.Context, identityID string, fb models.Feedback) (models.Feedback, error) {
	query, args, err := insertFeedbackQuery(identityID, fb)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "feedbackRepository.SaveFeedback").
			Str("identity_id", identityID).
			Msg("failed to insert feedback")
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
	}
	fb.ID = id

	return fb, nil
}

func (r *feedbackRepository) ListFeedback(ctx context.Context, identityID string) ([]models.Feedback, error) {
	log := r.logger

	query, args, err := selectFeedbackQuery(identityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "feedbackRepository.ListFeedback").
			Str("identity_id", identityID).
			Msg("failed to query feedback")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Feedback, 0)
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.User, &fb.Message, &fb.CreatedAt); err != nil {
			log.Err(err).
				Str("func", "feedbackRepository.ListFeedback").
				Msg("failed to scan feedback row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *feedbackRepository) DeleteFeedback(ctx context.Context, identityID string, id int64) error {
	query, args, err := deleteFeedbackQuery(identityID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "feedbackRepository.DeleteFeedback", identityID, query, args)
}

func (r *feedbackRepository) ClearFeedback(ctx context.Context, identityID string) error {
	query, args, err := clearFeedbackQuery(identityID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "feedbackRepository.ClearFeedback", identityID, query, args)
}

func (r *feedbackRepository) exec(ctx context.Context, fn, identityID, query string, args []any) error {
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", fn).
			Str("identity_id", identityID).
			Msg("failed to delete feedback")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
