// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Theme values accepted in [Settings].
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings are per-identity user preferences.
type Settings struct {
	// Theme is either ThemeLight or ThemeDark.
	Theme string `json:"theme"`

	// AutoLockMinutes overrides the configured auto-lock window when
	// positive.
	AutoLockMinutes int `json:"autoLockMinutes,omitempty"`
}

// DefaultSettings returns the settings of a freshly created record.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight}
}

// UserRecord is everything persisted for one identity: the public task list,
// settings, and the private vault. The vault fields are independent of the
// rest of the record but live alongside it.
type UserRecord struct {
	IdentityID string
	Tasks      []Task
	Settings   Settings
	Vault      VaultRecord
}

// NewUserRecord returns an empty record for identityID.
func NewUserRecord(identityID string) UserRecord {
	return UserRecord{
		IdentityID: identityID,
		Tasks:      []Task{},
		Settings:   DefaultSettings(),
	}
}
