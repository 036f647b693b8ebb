// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// MinPasswordLength is the minimal number of characters of a privacy
// password.
const MinPasswordLength = 4

// Field name constants accepted by [PasswordValidator].
const (
	// FieldPassword targets the new password (length rule).
	FieldPassword = "password"

	// FieldConfirmation targets the repeated entry of the new password.
	FieldConfirmation = "confirmation"

	// FieldCurrentPassword targets the current password of a change request.
	FieldCurrentPassword = "current_password"
)

// PasswordValidator validates privacy password requests:
// models.PasswordSetRequest and models.PasswordChangeRequest (value or
// pointer). It checks shape only; verifying the current password against
// the stored fingerprint is the caller's job.
type PasswordValidator struct {
	minLength int
}

// NewPasswordValidator constructs a PasswordValidator requiring
// [MinPasswordLength] characters.
func NewPasswordValidator() Validator {
	return &PasswordValidator{minLength: MinPasswordLength}
}

// Validate dispatches on the dynamic type of obj. Returns ErrUnsupportedType
// for anything else.
func (v *PasswordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PasswordSetRequest:
		return v.validateSet(value, fields...)
	case *models.PasswordSetRequest:
		return v.validateSet(*value, fields...)

	case models.PasswordChangeRequest:
		return v.validateChange(value, fields...)
	case *models.PasswordChangeRequest:
		return v.validateChange(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateSet checks a new password and its confirmation. Default fields:
// FieldPassword, FieldConfirmation.
func (v *PasswordValidator) validateSet(req models.PasswordSetRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldConfirmation}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if err := v.checkLength(req.Password); err != nil {
				return err
			}
		case FieldConfirmation:
			if req.Password != req.Confirmation {
				return ErrPasswordMismatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateChange checks a change request. Default fields: FieldPassword,
// FieldConfirmation, FieldCurrentPassword.
func (v *PasswordValidator) validateChange(req models.PasswordChangeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldConfirmation, FieldCurrentPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if err := v.checkLength(req.New); err != nil {
				return err
			}
		case FieldConfirmation:
			if req.New != req.Confirmation {
				return ErrPasswordMismatch
			}
		case FieldCurrentPassword:
			if req.Current == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PasswordValidator) checkLength(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < v.minLength {
		return ErrPasswordTooShort
	}
	return nil
}
