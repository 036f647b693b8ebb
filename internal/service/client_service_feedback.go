package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// FeedbackSubject is the subject line of relayed feedback.
const FeedbackSubject = "New To-Do App Feedback"

type clientFeedbackService struct {
	repo      store.FeedbackRepository
	relay     adapter.FeedbackRelay
	validator validators.Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewClientFeedbackService returns a feedback service. relay may be nil, in
// which case feedback is only kept locally.
func NewClientFeedbackService(repo store.FeedbackRepository, relay adapter.FeedbackRelay, validator validators.Validator, log *logger.Logger) FeedbackService {
	return &clientFeedbackService{
		repo:      repo,
		relay:     relay,
		validator: validator,
		logger:    log,
		now:       time.Now,
	}
}

func (f *clientFeedbackService) Submit(ctx context.Context, identity models.Identity, message string) (models.Feedback, error) {
	fb := models.Feedback{
		Message:   strings.TrimSpace(message),
		User:      identity.Label(),
		CreatedAt: f.now().UTC(),
	}
	if err := f.validator.Validate(ctx, fb); err != nil {
		return models.Feedback{}, err
	}

	saved, err := f.repo.SaveFeedback(ctx, identity.ID, fb)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("save feedback: %w", err)
	}

	if f.relay == nil {
		return saved, nil
	}

	err = f.relay.Send(ctx, models.FeedbackMail{
		Subject:   FeedbackSubject,
		Message:   saved.Message,
		UserEmail: identity.Email,
		Timestamp: saved.CreatedAt,
	})
	if err != nil {
		f.logger.Warn().
			Str("func", "clientFeedbackService.Submit").
			Str("identity_id", identity.ID).
			Int64("feedback_id", saved.ID).
			Err(err).
			Msg("feedback kept locally, relay failed")
		return saved, fmt.Errorf("%w: %w", ErrFeedbackNotSent, mapRelayError(err))
	}

	return saved, nil
}

func (f *clientFeedbackService) List(ctx context.Context, identityID string) ([]models.Feedback, error) {
	list, err := f.repo.ListFeedback(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	slices.Reverse(list)
	return list, nil
}

func (f *clientFeedbackService) Delete(ctx context.Context, identityID string, id int64) error {
	if err := f.repo.DeleteFeedback(ctx, identityID, id); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

func (f *clientFeedbackService) Clear(ctx context.Context, identityID string) error {
	if err := f.repo.ClearFeedback(ctx, identityID); err != nil {
		return fmt.Errorf("clear feedback: %w", err)
	}
	return nil
}
