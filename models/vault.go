// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptedPayload is the authenticated ciphertext of the private task list.
// Both fields are opaque; the GCM tag is part of Ciphertext.
type EncryptedPayload struct {
	// Nonce is the 12-byte random nonce used for this encryption.
	Nonce []byte `json:"nonce"`

	// Ciphertext holds the sealed JSON task list followed by the GCM tag.
	Ciphertext []byte `json:"ciphertext"`
}

// VaultKind classifies a persisted vault record.
type VaultKind int

const (
	// VaultEmpty means no password is set. The record may still carry
	// plaintext private tasks written by older versions of the application.
	VaultEmpty VaultKind = iota

	// VaultLegacyPlaintext is a record with a fingerprint but no salt or
	// payload: private tasks were stored in plaintext by an older version.
	// It is migrated to VaultEncrypted on the first successful unlock.
	VaultLegacyPlaintext

	// VaultEncrypted is the current format: fingerprint, salt and payload
	// are all present.
	VaultEncrypted

	// VaultCorrupt is any combination of fields that violates the record
	// invariants (payload without salt, salt or payload without fingerprint).
	VaultCorrupt
)

func (k VaultKind) String() string {
	switch k {
	case VaultEmpty:
		return "empty"
	case VaultLegacyPlaintext:
		return "legacy_plaintext"
	case VaultEncrypted:
		return "encrypted"
	default:
		return "corrupt"
	}
}

// VaultRecord is the persisted private-task record of a single identity.
//
// Invariants:
//   - Salt and Payload are both present or both absent.
//   - Fingerprint absent implies Salt and Payload absent.
//   - LegacyTasks is only non-empty for VaultEmpty and VaultLegacyPlaintext
//     records; writing an encrypted record always clears it.
type VaultRecord struct {
	// Fingerprint verifies a candidate password. Empty means no password.
	Fingerprint string `json:"password_fingerprint,omitempty"`

	// Salt is the 16-byte key-derivation salt of the current password.
	Salt []byte `json:"salt,omitempty"`

	// Payload is the encrypted private task list.
	Payload *EncryptedPayload `json:"encrypted_payload,omitempty"`

	// LegacyTasks holds plaintext private tasks of records written before
	// encryption existed.
	LegacyTasks []Task `json:"legacy_private_tasks,omitempty"`
}

// Kind reports which variant the record represents.
func (v VaultRecord) Kind() VaultKind {
	hasSalt := len(v.Salt) > 0
	hasPayload := v.Payload != nil

	switch {
	case v.Fingerprint == "" && !hasSalt && !hasPayload:
		return VaultEmpty
	case v.Fingerprint == "":
		return VaultCorrupt
	case hasSalt && hasPayload:
		return VaultEncrypted
	case !hasPayload:
		// a fingerprint with no payload is either legacy data or a record
		// whose empty payload was never written; both are migrated on unlock
		return VaultLegacyPlaintext
	default:
		return VaultCorrupt
	}
}

// IsProtected reports whether a password is set on the record.
func (v VaultRecord) IsProtected() bool {
	return v.Fingerprint != ""
}

// PrivacyState is the lock state of a privacy session.
type PrivacyState int

const (
	StateNoPassword PrivacyState = iota
	StateLocked
	StateUnlocked
)

func (s PrivacyState) String() string {
	switch s {
	case StateNoPassword:
		return "no_password"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// LockReason explains why a session was locked.
type LockReason string

const (
	LockManual         LockReason = "manual"
	LockInactivity     LockReason = "inactivity"
	LockFocusLost      LockReason = "focus_lost"
	LockReset          LockReason = "reset"
	LockIdentitySwitch LockReason = "identity_switch"
	LockShutdown       LockReason = "shutdown"
)
