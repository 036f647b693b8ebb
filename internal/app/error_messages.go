// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the to-do client.
//
// All Msg* constants are human-readable texts shown in the status line of
// the terminal UI. MessageFor maps service errors onto them so wording stays
// consistent no matter which screen reports the error.
package app

import (
	"errors"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
)

const (
	// MsgPasswordTooShort is shown when a new privacy password has fewer
	// than the minimum number of characters.
	MsgPasswordTooShort = "Password must be at least 4 characters"

	// MsgPasswordMismatch is shown when the confirmation differs from the
	// new password.
	MsgPasswordMismatch = "Passwords do not match"

	// MsgPasswordRequired is shown when a password prompt was submitted
	// empty.
	MsgPasswordRequired = "Please enter a password"

	// MsgInvalidPassword is shown when the entered password does not match
	// the stored fingerprint.
	MsgInvalidPassword = "Incorrect password"

	// MsgDecryptionFailed is shown when the vault cannot be decrypted with a
	// password that matched the fingerprint.
	MsgDecryptionFailed = "Private tasks could not be decrypted"

	// MsgBusy is shown when a privacy operation is already in progress.
	MsgBusy = "Another privacy operation is in progress"

	MsgNoPassword         = "Set a privacy password first"
	MsgPasswordAlreadySet = "A privacy password is already set"
	MsgLocked             = "Unlock private tasks first"
	MsgConfirmation       = "Confirmation required"
	MsgSessionClosed      = "Session closed"
	MsgTaskNotFound       = "Task not found"
	MsgEmptyTask          = "Please enter a task"
	MsgEmptyFeedback      = "Please enter your feedback"
	MsgFeedbackNotSent    = "Feedback saved, but could not be sent"
	MsgFeedbackRejected   = "Feedback saved, but the mail service rejected it"
	MsgRelayUnavailable   = "Feedback saved, mail service unavailable"
	MsgInvalidImportFile  = "Invalid file format"
	MsgInvalidImportMode  = "Unknown import mode"
	MsgInvalidAutoLock    = "Auto-lock must be at least 1 minute"
	MsgInvalidIdentity    = "Sign-in failed"
	MsgUnexpectedError    = "Something went wrong"
	MsgPasswordSet        = "Privacy password set"
	MsgPasswordChanged    = "Password changed"
	MsgUnlocked           = "Private tasks unlocked"
	MsgLockedManual       = "Private tasks locked"
	MsgLockedInactivity   = "Locked after inactivity"
	MsgLockedFocusLost    = "Locked, window lost focus"
	MsgResetMoved         = "Password removed, private tasks moved to public"
	MsgResetDeleted       = "Password removed, private tasks deleted"
	MsgCopied             = "Copied!"
	MsgExported           = "Tasks exported"
	MsgImported           = "Tasks imported"
	MsgFeedbackSent       = "Thank you for your feedback!"
	MsgSignedIn           = "Signed in"
	MsgSignedOut          = "Signed out"
)

// MessageFor returns the status-line text for err. Feedback relay errors
// are checked before ErrFeedbackNotSent so the cause is shown.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validators.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, validators.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, validators.ErrEmptyPassword):
		return MsgPasswordRequired
	case errors.Is(err, validators.ErrInvalidAutoLock):
		return MsgInvalidAutoLock
	case errors.Is(err, service.ErrInvalidCredential):
		return MsgInvalidPassword
	case errors.Is(err, service.ErrDecryptionFailed):
		return MsgDecryptionFailed
	case errors.Is(err, service.ErrConcurrentOperation):
		return MsgBusy
	case errors.Is(err, service.ErrNoPassword):
		return MsgNoPassword
	case errors.Is(err, service.ErrPasswordAlreadySet):
		return MsgPasswordAlreadySet
	case errors.Is(err, service.ErrLocked):
		return MsgLocked
	case errors.Is(err, service.ErrConfirmationRequired):
		return MsgConfirmation
	case errors.Is(err, service.ErrSessionClosed):
		return MsgSessionClosed
	case errors.Is(err, service.ErrTaskNotFound):
		return MsgTaskNotFound
	case errors.Is(err, service.ErrEmptyTaskText):
		return MsgEmptyTask
	case errors.Is(err, service.ErrEmptyFeedback):
		return MsgEmptyFeedback
	case errors.Is(err, service.ErrFeedbackRejected):
		return MsgFeedbackRejected
	case errors.Is(err, service.ErrRelayUnavailable):
		return MsgRelayUnavailable
	case errors.Is(err, service.ErrFeedbackNotSent):
		return MsgFeedbackNotSent
	case errors.Is(err, service.ErrInvalidImportFile):
		return MsgInvalidImportFile
	case errors.Is(err, service.ErrInvalidImportMode):
		return MsgInvalidImportMode
	}

	return MsgUnexpectedError
}
