package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptAdd
	promptEdit
	promptSearch
	promptSetPassword
	promptUnlock
	promptChangePassword
	promptAutoLock
	promptSignIn
	promptFeedback
	promptExport
	promptImport
)

// promptModel is the text input overlay. Password prompts mask every field.
type promptModel struct {
	kind   promptKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	target string
}

func newPrompt(kind promptKind, title string, secret bool, labels ...string) promptModel {
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].CharLimit = 2048
		if secret {
			inputs[i].EchoMode = textinput.EchoPassword
			inputs[i].EchoCharacter = '•'
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return promptModel{kind: kind, title: title, labels: labels, inputs: inputs}
}

func (m promptModel) active() bool {
	return m.kind != promptNone
}

func (m promptModel) withValue(v string) promptModel {
	if len(m.inputs) > 0 {
		m.inputs[0].SetValue(v)
		m.inputs[0].CursorEnd()
	}
	return m
}

func (m promptModel) value(i int) string {
	if i < 0 || i >= len(m.inputs) {
		return ""
	}
	return m.inputs[i].Value()
}

func (m promptModel) focusNext(step int) promptModel {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m promptModel) update(msg tea.Msg) (promptModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		b.WriteString(m.labels[i])
		b.WriteString(": [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}
	hint := "enter confirm    esc cancel"
	if len(m.inputs) > 1 {
		hint = "tab next field    " + hint
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(hint))
	return overlayBoxStyle.Render(b.String())
}
