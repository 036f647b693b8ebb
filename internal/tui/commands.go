package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// run executes fn against the current workspace off the UI goroutine.
func (m appModel) run(status string, fn func(ctx context.Context, ws *service.Workspace) error) tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		if err := fn(ctx, ws); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: status}
	}
}

func (m appModel) runFeedback(status string, fn func(ctx context.Context, fs service.FeedbackService) error) tea.Cmd {
	ctx, fs := m.ctx, m.services.FeedbackService
	return func() tea.Msg {
		if err := fn(ctx, fs); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: status}
	}
}

func (m appModel) cmdLoadFeedback() tea.Cmd {
	ctx, fs, id := m.ctx, m.services.FeedbackService, m.ws.Identity.ID
	return func() tea.Msg {
		items, err := fs.List(ctx, id)
		return feedbackLoadedMsg{items: items, err: err}
	}
}

func (m appModel) cmdSubmitFeedback(message string) tea.Cmd {
	ctx, fs, identity := m.ctx, m.services.FeedbackService, m.ws.Identity
	return func() tea.Msg {
		if _, err := fs.Submit(ctx, identity, message); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: app.MsgFeedbackSent}
	}
}

func (m appModel) cmdExport(path string) tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		data, err := ws.Transfer.Export(ctx)
		if err != nil {
			return opDoneMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return opDoneMsg{err: fmt.Errorf("write export: %w", err)}
		}
		return opDoneMsg{status: app.MsgExported + " to " + path}
	}
}

func (m appModel) cmdImport(path string, mode models.ImportMode) tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return opDoneMsg{err: fmt.Errorf("%w: %w", service.ErrInvalidImportFile, err)}
		}
		if err := ws.Transfer.Import(ctx, data, mode); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: app.MsgImported}
	}
}

// cmdSwitchIdentity resolves the next identity, locks and closes the current
// workspace and opens the one of the new identity.
func (m appModel) cmdSwitchIdentity(status string, resolve func(ctx context.Context) (models.Identity, error)) tea.Cmd {
	ctx, services, current := m.ctx, m.services, m.ws
	return func() tea.Msg {
		identity, err := resolve(ctx)
		if err != nil {
			return workspaceMsg{err: err}
		}

		current.Close(models.LockIdentitySwitch)

		ws, err := services.OpenWorkspace(ctx, identity)
		if err != nil {
			return workspaceMsg{err: err}
		}
		return workspaceMsg{ws: ws, status: status}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return opDoneMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return opDoneMsg{status: app.MsgCopied}
	}
}

func cmdTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
