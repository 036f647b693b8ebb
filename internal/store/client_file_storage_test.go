package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/models"
)

func encryptedVault() models.VaultRecord {
	return models.VaultRecord{
		Fingerprint: "fp",
		Salt:        []byte("0123456789abcdef"),
		Payload:     &models.EncryptedPayload{Nonce: []byte("nonce"), Ciphertext: []byte("sealed")},
	}
}

func TestIsFileDSN(t *testing.T) {
	assert.True(t, IsFileDSN("data/todo.json"))
	assert.True(t, IsFileDSN("TODO.JSON"))
	assert.False(t, IsFileDSN("todo.db"))
	assert.False(t, IsFileDSN(MemoryDSN))
}

func TestFileStorage_InMemoryRecordRoundTrip(t *testing.T) {
	s, err := NewFileStorage("")
	require.NoError(t, err)
	ctx := context.Background()

	rec, err := s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.NewUserRecord("u1"), rec)

	tasks := []models.Task{{ID: "a", Text: "milk"}}
	require.NoError(t, s.SaveTasks(ctx, "u1", tasks))
	require.NoError(t, s.SaveVault(ctx, "u1", encryptedVault()))
	require.NoError(t, s.SaveSettings(ctx, "u1", models.Settings{Theme: models.ThemeDark}))

	rec, err = s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, tasks, rec.Tasks)
	assert.Equal(t, models.ThemeDark, rec.Settings.Theme)
	assert.Equal(t, models.VaultEncrypted, rec.Vault.Kind())

	// records are isolated per identity
	other, err := s.GetRecord(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Tasks)
	assert.Equal(t, models.VaultEmpty, other.Vault.Kind())
}

func TestFileStorage_ReturnsCopies(t *testing.T) {
	s, err := NewFileStorage(MemoryDSN)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.SaveVault(ctx, "u1", encryptedVault()))

	rec, err := s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	rec.Vault.Payload.Ciphertext[0] ^= 0xff
	rec.Vault.Salt[0] ^= 0xff

	again, err := s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, encryptedVault(), again.Vault)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.json")
	ctx := context.Background()

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	rec := models.NewUserRecord("u1")
	rec.Tasks = []models.Task{{ID: "a", Text: "public", CreatedAt: 42}}
	rec.Vault = encryptedVault()
	require.NoError(t, s.SaveRecord(ctx, rec))
	require.NoError(t, s.SetCurrentIdentity(ctx, models.Identity{ID: "u1", Email: "u@example.com"}))
	_, err = s.SaveFeedback(ctx, "u1", models.Feedback{Message: "hi", CreatedAt: time.Unix(1, 0).UTC()})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)

	got, err := reopened.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, rec.Tasks, got.Tasks)
	assert.Equal(t, rec.Vault, got.Vault)

	current, err := reopened.GetCurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", current.Email)

	items, err := reopened.ListFeedback(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	_, err := NewFileStorage(path)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestFileStorage_FailedPersistKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.json")
	ctx := context.Background()

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveTasks(ctx, "u1", []models.Task{{ID: "a", Text: "kept"}}))

	// make the target unwritable by replacing the directory path
	s.path = filepath.Join(path, "cannot", "exist.json")
	err = s.SaveTasks(ctx, "u1", []models.Task{{ID: "b", Text: "lost"}})
	require.Error(t, err)

	rec, err := s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rec.Tasks, 1)
	assert.Equal(t, "kept", rec.Tasks[0].Text)
}

func TestFileStorage_Identity(t *testing.T) {
	s, err := NewFileStorage("")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.GetCurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrNoCurrentIdentity)

	assert.ErrorIs(t, s.SetCurrentIdentity(ctx, models.Identity{}), ErrEmptyIdentityID)

	require.NoError(t, s.SetCurrentIdentity(ctx, models.Identity{ID: "guest_1"}))
	id, err := s.GetCurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "guest_1", id.ID)

	require.NoError(t, s.ClearCurrentIdentity(ctx))
	_, err = s.GetCurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrNoCurrentIdentity)
}

func TestFileStorage_FeedbackPerIdentity(t *testing.T) {
	s, err := NewFileStorage("")
	require.NoError(t, err)
	ctx := context.Background()

	a, err := s.SaveFeedback(ctx, "a", models.Feedback{Message: "one"})
	require.NoError(t, err)
	b, err := s.SaveFeedback(ctx, "b", models.Feedback{Message: "two"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	items, err := s.ListFeedback(ctx, "a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Message)

	require.NoError(t, s.DeleteFeedback(ctx, "a", a.ID))
	items, err = s.ListFeedback(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.ClearFeedback(ctx, "b"))
	items, err = s.ListFeedback(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStorage_EmptyIdentityRejected(t *testing.T) {
	s, err := NewFileStorage("")
	require.NoError(t, err)

	_, err = s.GetRecord(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyIdentityID)
	assert.ErrorIs(t, s.SaveRecord(context.Background(), models.UserRecord{}), ErrEmptyIdentityID)
}

func TestFileStorage_SaveTasksAndVaultKeepsSettings(t *testing.T) {
	s, err := NewFileStorage("")
	require.NoError(t, err)
	ctx := context.Background()

	settings := models.Settings{Theme: models.ThemeDark, AutoLockMinutes: 3}
	require.NoError(t, s.SaveSettings(ctx, "u1", settings))
	require.NoError(t, s.SaveVault(ctx, "u1", encryptedVault()))

	tasks := []models.Task{{ID: "a", Text: "moved"}}
	require.NoError(t, s.SaveTasksAndVault(ctx, "u1", tasks, models.VaultRecord{}))

	rec, err := s.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, tasks, rec.Tasks)
	assert.Equal(t, settings, rec.Settings)
	assert.Equal(t, models.VaultEmpty, rec.Vault.Kind())
}
