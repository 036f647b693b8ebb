package tui

import "strings"

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClearAll
	confirmReset
	confirmResetDelete
	confirmImportMode
	confirmFeedbackClear
)

// confirmModel is a non-blocking y/n overlay. target carries the task id or
// file path the answer applies to.
type confirmModel struct {
	kind    confirmKind
	message string
	target  string
}

func (m confirmModel) active() bool {
	return m.kind != confirmNone
}

func (m confirmModel) View() string {
	var hint string
	switch m.kind {
	case confirmReset:
		hint = "m move to public    d delete    esc cancel"
	case confirmImportMode:
		hint = "y replace    n append    esc cancel"
	default:
		hint = "y yes    n no"
	}

	content := strings.TrimSpace(m.message) + "\n\n" + helpStyle.Render(hint)
	return overlayBoxStyle.Render(content)
}
