// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	recordsTable    = "records"
	identitiesTable = "identities"
	feedbackTable   = "feedback"
)

// builder emits "?" placeholders as expected by go-sqlite3.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var recordColumns = []string{
	"identity_id",
	"tasks",
	"theme",
	"auto_lock_minutes",
	"password_fingerprint",
	"salt",
	"payload_nonce",
	"payload_ciphertext",
	"legacy_private_tasks",
	"updated_at",
}

// recordRow is the flat SQL shape of a models.UserRecord.
type recordRow struct {
	IdentityID      string
	Tasks           string
	Theme           string
	AutoLockMinutes int
	Fingerprint     string
	Salt            []byte
	Nonce           []byte
	Ciphertext      []byte
	LegacyTasks     sql.NullString
	UpdatedAt       time.Time
}

func (r *recordRow) scanTargets() []any {
	return []any{
		&r.IdentityID,
		&r.Tasks,
		&r.Theme,
		&r.AutoLockMinutes,
		&r.Fingerprint,
		&r.Salt,
		&r.Nonce,
		&r.Ciphertext,
		&r.LegacyTasks,
		&r.UpdatedAt,
	}
}

func (r recordRow) toRecord() (models.UserRecord, error) {
	rec := models.NewUserRecord(r.IdentityID)

	if r.Tasks != "" {
		if err := json.Unmarshal([]byte(r.Tasks), &rec.Tasks); err != nil {
			return models.UserRecord{}, fmt.Errorf("%w: tasks: %w", ErrCorruptRecord, err)
		}
	}
	if rec.Tasks == nil {
		rec.Tasks = []models.Task{}
	}

	if r.Theme != "" {
		rec.Settings.Theme = r.Theme
	}
	rec.Settings.AutoLockMinutes = r.AutoLockMinutes

	rec.Vault = vaultFromColumns(r.Fingerprint, r.Salt, r.Nonce, r.Ciphertext)
	if r.LegacyTasks.Valid && r.LegacyTasks.String != "" {
		if err := json.Unmarshal([]byte(r.LegacyTasks.String), &rec.Vault.LegacyTasks); err != nil {
			return models.UserRecord{}, fmt.Errorf("%w: legacy private tasks: %w", ErrCorruptRecord, err)
		}
	}

	return rec, nil
}

func vaultFromColumns(fingerprint string, salt, nonce, ciphertext []byte) models.VaultRecord {
	v := models.VaultRecord{Fingerprint: fingerprint}
	if len(salt) > 0 {
		v.Salt = salt
	}
	if len(nonce) > 0 || len(ciphertext) > 0 {
		v.Payload = &models.EncryptedPayload{Nonce: nonce, Ciphertext: ciphertext}
	}
	return v
}

// vaultValues returns the column values of v in recordColumns order
// (password_fingerprint through legacy_private_tasks). Absent parts are
// written as NULL.
func vaultValues(v models.VaultRecord) ([]any, error) {
	var salt, nonce, ciphertext any
	if len(v.Salt) > 0 {
		salt = v.Salt
	}
	if v.Payload != nil {
		nonce, ciphertext = v.Payload.Nonce, v.Payload.Ciphertext
	}

	var legacy any
	if len(v.LegacyTasks) > 0 {
		b, err := json.Marshal(v.LegacyTasks)
		if err != nil {
			return nil, fmt.Errorf("encode legacy private tasks: %w", err)
		}
		legacy = string(b)
	}

	return []any{v.Fingerprint, salt, nonce, ciphertext, legacy}, nil
}

func tasksValue(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(b), nil
}

func selectRecordQuery(identityID string) (string, []any, error) {
	return builder.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"identity_id": identityID}).
		ToSql()
}

// upsertRecordQuery writes the given columns for identityID and leaves the
// remaining columns untouched when the row already exists.
func upsertRecordQuery(identityID string, columns []string, values []any, now time.Time) (string, []any, error) {
	cols := make([]string, 0, len(columns)+2)
	cols = append(cols, "identity_id")
	cols = append(cols, columns...)
	cols = append(cols, "updated_at")

	vals := make([]any, 0, len(values)+2)
	vals = append(vals, identityID)
	vals = append(vals, values...)
	vals = append(vals, now)

	assignments := make([]string, 0, len(columns)+1)
	for _, c := range cols[1:] {
		assignments = append(assignments, c+" = excluded."+c)
	}
	suffix := "ON CONFLICT(identity_id) DO UPDATE SET " + strings.Join(assignments, ", ")

	return builder.
		Insert(recordsTable).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSql()
}

var vaultColumns = []string{
	"password_fingerprint",
	"salt",
	"payload_nonce",
	"payload_ciphertext",
	"legacy_private_tasks",
}

var identityColumns = []string{"id", "name", "email", "picture", "is_current"}

func selectCurrentIdentityQuery() (string, []any, error) {
	return builder.
		Select("id", "name", "email", "picture").
		From(identitiesTable).
		Where(sq.Eq{"is_current": 1}).
		Limit(1).
		ToSql()
}

func clearCurrentIdentityQuery() (string, []any, error) {
	return builder.
		Update(identitiesTable).
		Set("is_current", 0).
		Where(sq.Eq{"is_current": 1}).
		ToSql()
}

func upsertIdentityQuery(identity models.Identity) (string, []any, error) {
	return builder.
		Insert(identitiesTable).
		Columns(identityColumns...).
		Values(identity.ID, identity.Name, identity.Email, identity.Picture, 1).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, " +
			"picture = excluded.picture, is_current = excluded.is_current").
		ToSql()
}

func insertFeedbackQuery(identityID string, fb models.Feedback) (string, []any, error) {
	return builder.
		Insert(feedbackTable).
		Columns("identity_id", "user_label", "message", "created_at").
		Values(identityID, fb.User, fb.Message, fb.CreatedAt).
		ToSql()
}

func selectFeedbackQuery(identityID string) (string, []any, error) {
	return builder.
		Select("id", "user_label", "message", "created_at").
		From(feedbackTable).
		Where(sq.Eq{"identity_id": identityID}).
		OrderBy("id").
		ToSql()
}

func deleteFeedbackQuery(identityID string, id int64) (string, []any, error) {
	return builder.
		Delete(feedbackTable).
		Where(sq.Eq{"identity_id": identityID, "id": id}).
		ToSql()
}

func clearFeedbackQuery(identityID string) (string, []any, error) {
	return builder.
		Delete(feedbackTable).
		Where(sq.Eq{"identity_id": identityID}).
		ToSql()
}
