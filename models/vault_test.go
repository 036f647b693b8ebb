// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaultRecord_Kind(t *testing.T) {
	payload := &EncryptedPayload{Nonce: make([]byte, 12), Ciphertext: []byte{1, 2, 3}}
	salt := make([]byte, 16)

	tests := []struct {
		name   string
		record VaultRecord
		want   VaultKind
	}{
		{name: "empty", record: VaultRecord{}, want: VaultEmpty},
		{name: "empty with staged plaintext", record: VaultRecord{LegacyTasks: []Task{{ID: "a"}}}, want: VaultEmpty},
		{name: "encrypted", record: VaultRecord{Fingerprint: "f", Salt: salt, Payload: payload}, want: VaultEncrypted},
		{name: "legacy plaintext", record: VaultRecord{Fingerprint: "f", LegacyTasks: []Task{{ID: "a"}}}, want: VaultLegacyPlaintext},
		{name: "fingerprint and salt without payload", record: VaultRecord{Fingerprint: "f", Salt: salt}, want: VaultLegacyPlaintext},
		{name: "payload without salt", record: VaultRecord{Fingerprint: "f", Payload: payload}, want: VaultCorrupt},
		{name: "payload without fingerprint", record: VaultRecord{Salt: salt, Payload: payload}, want: VaultCorrupt},
		{name: "salt without fingerprint", record: VaultRecord{Salt: salt}, want: VaultCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Kind())
		})
	}
}

func TestTaskFilter_Matches(t *testing.T) {
	done := Task{ID: "1", Completed: true}
	open := Task{ID: "2"}

	assert.True(t, FilterAll.Matches(done))
	assert.True(t, FilterAll.Matches(open))
	assert.True(t, FilterActive.Matches(open))
	assert.False(t, FilterActive.Matches(done))
	assert.True(t, FilterCompleted.Matches(done))
	assert.False(t, FilterCompleted.Matches(open))
	assert.True(t, TaskFilter("unknown").Matches(done))
}

func TestCloneTasks_DoesNotShareBackingArray(t *testing.T) {
	src := []Task{{ID: "1", Text: "a"}}
	dst := CloneTasks(src)
	dst[0].Text = "b"

	assert.Equal(t, "a", src[0].Text)
	assert.NotNil(t, CloneTasks(nil))
	assert.Equal(t, 0, IndexOfTask(src, "1"))
	assert.Equal(t, -1, IndexOfTask(src, "missing"))
}

func TestIdentity_GuestAndLabel(t *testing.T) {
	guest := Identity{ID: GuestIDPrefix + "1", Name: "Guest"}
	user := Identity{ID: "1234", Email: "me@example.com"}

	assert.True(t, guest.IsGuest())
	assert.False(t, user.IsGuest())
	assert.Equal(t, "Guest", guest.Label())
	assert.Equal(t, "me@example.com", user.Label())
}
