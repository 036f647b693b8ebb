// Package tui implements the terminal user interface of the to-do client.
//
// The UI is a single bubbletea program. Key and mouse events are reported
// to the privacy session as activity, and focus loss (tea.BlurMsg) locks it.
// Every service call runs inside a tea.Cmd so the event loop never waits on
// key derivation or storage.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, logger: log}
}

// Run shows the task screen for ws until the user quits. Signing in or out
// replaces the workspace; the one open at exit is returned so the caller
// can close it.
func (t *TUI) Run(ctx context.Context, ws *service.Workspace) (*service.Workspace, error) {
	n := &notifier{}
	model := newAppModel(ctx, t.services, ws, n, t.buildInfo, t.logger)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	n.attach(p)
	defer n.attach(nil)

	finalModel, err := p.Run()

	result, ok := finalModel.(appModel)
	if !ok {
		return ws, tea.ErrProgramKilled
	}
	return result.ws, err
}
