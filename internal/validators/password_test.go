// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-todo-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordValidator(t *testing.T) {
	require.NotNil(t, NewPasswordValidator())
}

func TestPasswordValidator_UnsupportedType(t *testing.T) {
	v := NewPasswordValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestPasswordValidator_SetRequest(t *testing.T) {
	v := NewPasswordValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.PasswordSetRequest
		wantErr error
	}{
		{name: "valid", req: models.PasswordSetRequest{Password: "abcd", Confirmation: "abcd"}},
		{name: "valid unicode", req: models.PasswordSetRequest{Password: "пароль", Confirmation: "пароль"}},
		{name: "empty", req: models.PasswordSetRequest{}, wantErr: ErrEmptyPassword},
		{name: "too short", req: models.PasswordSetRequest{Password: "abc", Confirmation: "abc"}, wantErr: ErrPasswordTooShort},
		{name: "four runes multibyte", req: models.PasswordSetRequest{Password: "ключ", Confirmation: "ключ"}},
		{name: "mismatch", req: models.PasswordSetRequest{Password: "abcd", Confirmation: "abce"}, wantErr: ErrPasswordMismatch},
		{name: "short wins over mismatch", req: models.PasswordSetRequest{Password: "ab", Confirmation: "cd"}, wantErr: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			// pointer form behaves the same
			req := tt.req
			assert.ErrorIs(t, v.Validate(ctx, &req), tt.wantErr)
		})
	}
}

func TestPasswordValidator_ChangeRequest(t *testing.T) {
	v := NewPasswordValidator()
	ctx := context.Background()

	valid := models.PasswordChangeRequest{Current: "abcd", New: "wxyz", Confirmation: "wxyz"}
	require.NoError(t, v.Validate(ctx, valid))

	noCurrent := valid
	noCurrent.Current = ""
	assert.ErrorIs(t, v.Validate(ctx, noCurrent), ErrEmptyPassword)

	short := valid
	short.New, short.Confirmation = "wx", "wx"
	assert.ErrorIs(t, v.Validate(ctx, short), ErrPasswordTooShort)

	mismatch := valid
	mismatch.Confirmation = "wxya"
	assert.ErrorIs(t, v.Validate(ctx, &mismatch), ErrPasswordMismatch)
}

func TestPasswordValidator_FieldScoping(t *testing.T) {
	v := NewPasswordValidator()
	ctx := context.Background()

	mismatch := models.PasswordSetRequest{Password: "abcd", Confirmation: "zzzz"}
	assert.NoError(t, v.Validate(ctx, mismatch, FieldPassword))
	assert.ErrorIs(t, v.Validate(ctx, mismatch, FieldConfirmation), ErrPasswordMismatch)
	assert.ErrorIs(t, v.Validate(ctx, mismatch, "bogus"), ErrUnknownField)
}
