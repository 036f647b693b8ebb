package service

import (
	"errors"

	"github.com/MKhiriev/go-todo-keeper/internal/validators"
)

// Privacy session errors.
var (
	// ErrValidation wraps a password validation failure: too short, empty
	// or not matching its confirmation. The session state is unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredential is returned when a password does not match the
	// stored fingerprint.
	ErrInvalidCredential = errors.New("invalid password")

	// ErrDecryptionFailed is returned when the fingerprint matched but the
	// payload could not be opened. It signals corrupted storage, not a user
	// mistake.
	ErrDecryptionFailed = errors.New("private tasks could not be decrypted")

	// ErrCorruptVault is wrapped by ErrDecryptionFailed when the persisted
	// vault fields contradict each other.
	ErrCorruptVault = errors.New("private vault record is corrupt")

	// ErrConcurrentOperation is returned when a transition is attempted
	// while another one is still running. The caller may retry.
	ErrConcurrentOperation = errors.New("another privacy operation is in progress")

	ErrNoPassword           = errors.New("no privacy password is set")
	ErrPasswordAlreadySet   = errors.New("privacy password is already set")
	ErrLocked               = errors.New("private tasks are locked")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSessionClosed        = errors.New("privacy session is closed")
)

// Task errors.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyTaskText = validators.ErrEmptyTaskText
)

// Feedback errors.
var (
	ErrEmptyFeedback    = validators.ErrEmptyFeedback
	ErrFeedbackNotSent  = errors.New("feedback saved locally but not delivered")
	ErrFeedbackRejected = errors.New("feedback relay rejected the message")
	ErrRelayUnavailable = errors.New("feedback relay is unavailable")
)

// Import errors.
var (
	ErrInvalidImportFile = errors.New("invalid import file")
	ErrInvalidImportMode = validators.ErrInvalidImportMode
)
