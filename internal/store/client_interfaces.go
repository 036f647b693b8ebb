package store

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// RecordRepository persists one [models.UserRecord] per identity.
type RecordRepository interface {
	// GetRecord returns the record of identityID, or a fresh
	// [models.NewUserRecord] when nothing was stored yet.
	GetRecord(ctx context.Context, identityID string) (models.UserRecord, error)

	// SaveTasks replaces the public task list of identityID.
	SaveTasks(ctx context.Context, identityID string, tasks []models.Task) error

	// SaveSettings replaces the settings of identityID.
	SaveSettings(ctx context.Context, identityID string, settings models.Settings) error

	// SaveVault replaces the private vault of identityID in one write.
	SaveVault(ctx context.Context, identityID string, vault models.VaultRecord) error

	// SaveTasksAndVault replaces the public task list and the vault of
	// identityID in one atomic write. It is used whenever tasks move
	// between the two lists.
	SaveTasksAndVault(ctx context.Context, identityID string, tasks []models.Task, vault models.VaultRecord) error

	// SaveRecord replaces the whole record in one atomic write.
	SaveRecord(ctx context.Context, record models.UserRecord) error
}

// IdentityRepository remembers which identity is signed in.
type IdentityRepository interface {
	// GetCurrentIdentity returns the signed-in identity or
	// ErrNoCurrentIdentity.
	GetCurrentIdentity(ctx context.Context) (models.Identity, error)

	// SetCurrentIdentity stores identity and marks it as current.
	SetCurrentIdentity(ctx context.Context, identity models.Identity) error

	// ClearCurrentIdentity forgets the signed-in identity. Stored records
	// are kept.
	ClearCurrentIdentity(ctx context.Context) error
}

// FeedbackRepository keeps submitted feedback messages.
type FeedbackRepository interface {
	// SaveFeedback stores fb for identityID and returns it with its ID set.
	SaveFeedback(ctx context.Context, identityID string, fb models.Feedback) (models.Feedback, error)

	// ListFeedback returns the feedback of identityID, oldest first.
	ListFeedback(ctx context.Context, identityID string) ([]models.Feedback, error)

	// DeleteFeedback removes one message of identityID. Unknown ids are
	// not an error.
	DeleteFeedback(ctx context.Context, identityID string, id int64) error

	// ClearFeedback removes every message of identityID.
	ClearFeedback(ctx context.Context, identityID string) error
}
