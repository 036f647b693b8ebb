package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// PrivateTasksFunc receives a copy of the resident private tasks and returns
// the list that should replace them.
type PrivateTasksFunc func(private []models.Task) ([]models.Task, error)

// PrivacySession owns the lock state of one identity's private vault: the
// derived key, the decrypted private tasks and the auto-lock timer.
//
// Transitions (SetPassword, Unlock, ChangePassword, ResetAndMove,
// ResetAndDelete, UpdatePrivate, Transfer) never overlap: a transition
// started while another is running fails with [ErrConcurrentOperation].
// Lock never fails; a lock requested during a transition is applied as soon
// as that transition ends.
type PrivacySession interface {
	// IdentityID returns the identity whose vault this session guards.
	IdentityID() string

	// State reports NoPassword, Locked or Unlocked.
	State() models.PrivacyState

	// IsProtected reports whether a privacy password is set.
	IsProtected() bool

	// CurrentlyUnlocked reports whether private tasks are resident.
	CurrentlyUnlocked() bool

	// Tasks returns a copy of the resident private tasks. It returns
	// [ErrLocked] while locked and an empty list when no password is set.
	Tasks() ([]models.Task, error)

	// AutoLockDeadline returns when the session will lock itself if no
	// activity is observed, and whether a deadline is armed.
	AutoLockDeadline() (time.Time, bool)

	// SetPassword protects the vault with password. Plaintext private tasks
	// left by older versions are encrypted in the same write. The session
	// ends Locked.
	SetPassword(ctx context.Context, password, confirmation string) error

	// Unlock verifies password, decrypts the vault and starts the auto-lock
	// timer. It returns the private tasks.
	Unlock(ctx context.Context, password string) ([]models.Task, error)

	// Lock discards the key and the plaintext tasks. It is a no-op unless
	// the session is Unlocked.
	Lock(reason models.LockReason)

	// ChangePassword re-encrypts the vault under next. It is accepted from
	// Locked and Unlocked; the session ends Unlocked with the new key.
	ChangePassword(ctx context.Context, current, next, confirmation string) error

	// ResetAndMove removes the password and returns the private tasks after
	// appending them to the stored public list in the same write. The
	// session must be Unlocked.
	ResetAndMove(ctx context.Context) ([]models.Task, error)

	// ResetAndDelete removes the password and destroys the private tasks.
	// confirmed must be true.
	ResetAndDelete(ctx context.Context, confirmed bool) error

	// UpdatePrivate applies fn to the private tasks and persists the
	// re-encrypted result. Requires Unlocked.
	UpdatePrivate(ctx context.Context, fn PrivateTasksFunc) error

	// Transfer persists public together with the result of fn in one atomic
	// write. It is used to move tasks between the two lists. Requires
	// Unlocked.
	Transfer(ctx context.Context, public []models.Task, fn PrivateTasksFunc) error

	// Touch is the activity signal; it re-arms the auto-lock deadline while
	// Unlocked.
	Touch()

	// FocusLost locks the session immediately.
	FocusLost()

	// SetLockListener registers fn to be called after every lock, outside
	// the session's locks.
	SetLockListener(fn func(reason models.LockReason))

	// SetAutoLockTimeout changes the inactivity window. It takes effect on
	// the next arm.
	SetAutoLockTimeout(d time.Duration)

	// Close locks the session and rejects every later transition.
	Close()
}

// TaskView is a filtered listing of both task lists.
type TaskView struct {
	Public  []models.Task
	Private []models.Task
	// PrivateLocked is true when the vault is protected and locked, so
	// Private is empty even though private tasks may exist.
	PrivateLocked bool
}

// TaskService manages the public task list of one identity and routes
// private task edits through the privacy session.
type TaskService interface {
	// Public returns a copy of the public task list.
	Public() []models.Task

	// List returns both lists filtered by completion state and by a
	// case-insensitive substring of the task text.
	List(filter models.TaskFilter, query string) TaskView

	// Stats counts public tasks and resident private tasks.
	Stats() models.TaskStats

	// Add prepends a new public task.
	Add(ctx context.Context, text string) (models.Task, error)

	// Toggle flips the completion flag of a public or unlocked private task.
	Toggle(ctx context.Context, id string) error

	// Edit replaces the text of a task. Blank text keeps the old one.
	Edit(ctx context.Context, id, text string) error

	// Delete removes a public or unlocked private task.
	Delete(ctx context.Context, id string) error

	// MakePrivate moves a public task to the front of the private list.
	MakePrivate(ctx context.Context, id string) error

	// MakePublic moves a private task to the front of the public list.
	MakePublic(ctx context.Context, id string) error

	// ClearCompleted removes completed public tasks, and completed private
	// tasks when unlocked.
	ClearCompleted(ctx context.Context) error

	// ClearAll removes every public task, and every private task when
	// unlocked.
	ClearAll(ctx context.Context) error

	// ResetPrivacyMove removes the privacy password and appends the private
	// tasks to the public list.
	ResetPrivacyMove(ctx context.Context) ([]models.Task, error)

	// Import replaces or extends both lists. Imported private tasks
	// require an unlocked session and are written together with the public
	// list.
	Import(ctx context.Context, public, private []models.Task, mode models.ImportMode) error
}

// SettingsService manages per-identity preferences.
type SettingsService interface {
	Settings() models.Settings
	ToggleTheme(ctx context.Context) (models.Settings, error)
	// SetAutoLockMinutes stores n (n >= 1) and applies it to the live
	// session.
	SetAutoLockMinutes(ctx context.Context, n int) (models.Settings, error)
	// AutoLockTimeout returns the effective auto-lock window.
	AutoLockTimeout() time.Duration
}

// IdentityService resolves who is using the application.
type IdentityService interface {
	// Current returns the signed-in identity, creating a guest when there
	// is none.
	Current(ctx context.Context) (models.Identity, error)

	// SignIn reads the claims of an ID token and makes its subject current.
	SignIn(ctx context.Context, credential string) (models.Identity, error)

	// SignOut replaces the current identity with a new guest.
	SignOut(ctx context.Context) (models.Identity, error)
}

// TransferService exports and imports the JSON task document.
type TransferService interface {
	// Export renders public tasks, resident private tasks and settings.
	Export(ctx context.Context) ([]byte, error)

	// Import merges or replaces tasks from data according to mode.
	Import(ctx context.Context, data []byte, mode models.ImportMode) error
}

// FeedbackService stores feedback locally and relays it by e-mail.
type FeedbackService interface {
	// Submit saves message and relays it when a relay is configured. A
	// relay failure returns the saved feedback together with
	// [ErrFeedbackNotSent].
	Submit(ctx context.Context, identity models.Identity, message string) (models.Feedback, error)

	// List returns the feedback of identityID, newest first.
	List(ctx context.Context, identityID string) ([]models.Feedback, error)

	Delete(ctx context.Context, identityID string, id int64) error
	Clear(ctx context.Context, identityID string) error
}
