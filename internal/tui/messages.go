package tui

import (
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// lockedMsg is delivered by the privacy session's lock listener.
type lockedMsg struct {
	identityID string
	reason     models.LockReason
}

// opDoneMsg reports the outcome of a background operation.
type opDoneMsg struct {
	status string
	err    error
}

type workspaceMsg struct {
	ws     *service.Workspace
	status string
	err    error
}

type feedbackLoadedMsg struct {
	items []models.Feedback
	err   error
}

type tickMsg time.Time

type clearStatusMsg struct {
	seq int
}
