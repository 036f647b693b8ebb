package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	ctx := context.Background()

	fs, err := store.NewFileStorage("")
	require.NoError(t, err)
	storages := &store.ClientStorages{Records: fs, Identities: fs, Feedback: fs}
	keys := crypto.NewKeyChainService(crypto.WithIterations(1000))
	services := service.NewClientServices(storages, nil, keys, time.Minute, logger.Nop())

	ws, err := services.OpenWorkspace(ctx, models.Identity{ID: "u1", Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close(models.LockShutdown) })

	return newAppModel(ctx, services, ws, &notifier{}, models.NewAppBuildInfo("", "", ""), logger.Nop())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(appModel)
	require.True(t, ok)
	return out, cmd
}

// exec runs the command a key produced and feeds its message back.
func exec(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, runes(string(r)))
	}
	return m
}

func TestModel_AddTask(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("a"))
	require.Equal(t, promptAdd, m.prompt.kind)

	m = typeText(t, m, "buy milk")
	m, cmd := update(t, m, enter())
	assert.False(t, m.prompt.active())

	m = exec(t, m, cmd)
	require.Len(t, m.view.Public, 1)
	assert.Equal(t, "buy milk", m.view.Public[0].Text)
	assert.Contains(t, m.View(), "buy milk")
}

func TestModel_AddBlankShowsMessage(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("a"))
	m, cmd := update(t, m, enter())
	m = exec(t, m, cmd)

	assert.True(t, m.statusErr)
	assert.Equal(t, app.MsgEmptyTask, m.status)
}

func TestModel_DeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	_, err := m.ws.Tasks.Add(context.Background(), "call mom")
	require.NoError(t, err)
	m.refresh()

	m, _ = update(t, m, runes("d"))
	require.Equal(t, confirmDelete, m.confirm.kind)

	m, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.confirm.active())
	assert.Len(t, m.view.Public, 1)

	m, _ = update(t, m, runes("d"))
	m, cmd = update(t, m, runes("y"))
	m = exec(t, m, cmd)
	assert.Empty(t, m.view.Public)
}

func TestModel_SetPasswordUnlockAndBlur(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("u"))
	require.Equal(t, promptSetPassword, m.prompt.kind)
	m = typeText(t, m, "secret1")
	m, cmd := update(t, m, enter())
	require.Nil(t, cmd, "enter on the first field moves to the confirmation")
	m = typeText(t, m, "secret1")
	m, cmd = update(t, m, enter())
	m = exec(t, m, cmd)
	require.Equal(t, models.StateLocked, m.state)
	assert.Equal(t, app.MsgPasswordSet, m.status)

	m, _ = update(t, m, runes("u"))
	require.Equal(t, promptUnlock, m.prompt.kind)
	m = typeText(t, m, "secret1")
	m, cmd = update(t, m, enter())
	m = exec(t, m, cmd)
	require.Equal(t, models.StateUnlocked, m.state)
	assert.Contains(t, m.View(), "auto-lock in")

	m, _ = update(t, m, tea.BlurMsg{})
	assert.Equal(t, models.StateLocked, m.state)
	assert.True(t, m.view.PrivateLocked)
}

func TestModel_WrongPassword(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.ws.Session.SetPassword(context.Background(), "secret1", "secret1"))
	m.refresh()

	m, _ = update(t, m, runes("u"))
	m = typeText(t, m, "nope")
	m, cmd := update(t, m, enter())
	m = exec(t, m, cmd)

	assert.Equal(t, models.StateLocked, m.state)
	assert.Equal(t, app.MsgInvalidPassword, m.status)
}

func TestModel_LockedMsgFromOtherIdentityIgnored(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, lockedMsg{identityID: "someone-else", reason: models.LockInactivity})
	assert.Nil(t, cmd)
	assert.Empty(t, m.status)

	m, _ = update(t, m, lockedMsg{identityID: "u1", reason: models.LockInactivity})
	assert.Equal(t, app.MsgLockedInactivity, m.status)
}

func TestModel_MakePrivateWithoutPassword(t *testing.T) {
	m := newTestModel(t)
	_, err := m.ws.Tasks.Add(context.Background(), "secret plan")
	require.NoError(t, err)
	m.refresh()

	m, cmd := update(t, m, runes("m"))
	m = exec(t, m, cmd)

	assert.Equal(t, app.MsgNoPassword, m.status)
	assert.Len(t, m.view.Public, 1)
}

func TestModel_ExportImport(t *testing.T) {
	m := newTestModel(t)
	ctx := context.Background()
	_, err := m.ws.Tasks.Add(ctx, "keep me")
	require.NoError(t, err)
	m.refresh()

	path := filepath.Join(t.TempDir(), "export.json")
	m = exec(t, m, m.cmdExport(path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, m.ws.Tasks.ClearAll(ctx))
	m.refresh()
	require.Empty(t, m.view.Public)

	m, _ = update(t, m, runes("I"))
	m = typeText(t, m, path)
	m, _ = update(t, m, enter())
	require.Equal(t, confirmImportMode, m.confirm.kind)

	m, cmd := update(t, m, runes("y"))
	m = exec(t, m, cmd)
	require.Len(t, m.view.Public, 1)
	assert.Equal(t, "keep me", m.view.Public[0].Text)
}

func TestFormatCountdown(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "4:05", formatCountdown(now.Add(4*time.Minute+5*time.Second), now))
	assert.Equal(t, "0:00", formatCountdown(now.Add(-time.Second), now))
}
