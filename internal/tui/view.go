package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

func (m appModel) View() string {
	var body string
	switch {
	case m.showBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo)
	case m.screen == screenFeedback:
		body = m.feedbackView()
	default:
		body = m.tasksView()
	}

	if m.prompt.active() {
		body += "\n\n" + m.prompt.View()
	}
	if m.confirm.active() {
		body += "\n\n" + m.confirm.View()
	}
	if m.status != "" {
		line := m.status
		if m.statusErr {
			line = errorStyle.Render(line)
		}
		body += "\n\n" + line
	}

	return appStyle.Render(body)
}

func (m appModel) tasksView() string {
	pal := paletteFor(m.settings.Theme)

	who := m.ws.Identity.Label()
	if !m.ws.Identity.IsGuest() && m.ws.Identity.Email != "" {
		who = m.ws.Identity.Name + " <" + m.ws.Identity.Email + ">"
	}
	title := pal.accent.Render("To-Do") + "  " + who

	var b strings.Builder
	fmt.Fprintf(&b, "filter: %s", m.filter)
	if m.query != "" {
		fmt.Fprintf(&b, "   search: %q", m.query)
	}
	fmt.Fprintf(&b, "   %d tasks, %d completed\n\n", m.stats.Total, m.stats.Completed)

	b.WriteString(m.paneHeader(panePublic, "Tasks", pal))
	b.WriteString(m.renderTasks(m.view.Public, panePublic, pal))

	b.WriteString("\n")
	b.WriteString(m.paneHeader(panePrivate, "Private "+m.privacyLabel(), pal))
	switch {
	case m.state == models.StateNoPassword && len(m.view.Private) == 0:
		b.WriteString(helpStyle.Render("  no privacy password, press u to set one") + "\n")
	case m.view.PrivateLocked:
		b.WriteString(helpStyle.Render("  locked, press u to unlock") + "\n")
	default:
		b.WriteString(pal.private.Render(m.renderTasks(m.view.Private, panePrivate, pal)))
	}

	hotKeys := "a add  e edit  space toggle  d delete  m move  c copy  / search  f filter\n" +
		"u lock/unlock  P change password  R reset  x clear done  X clear all\n" +
		"E export  I import  t theme  A auto-lock  F feedback  S sign in  O sign out  v version"

	return renderPage(title, b.String(), hotKeys)
}

func (m appModel) paneHeader(p pane, label string, pal palette) string {
	if m.pane == p {
		return pal.accent.Render("▸ "+label) + "\n"
	}
	return titleStyle.Render("  "+label) + "\n"
}

func (m appModel) privacyLabel() string {
	switch m.state {
	case models.StateLocked:
		return "[locked]"
	case models.StateUnlocked:
		if !m.deadline.IsZero() {
			return "[unlocked, auto-lock in " + formatCountdown(m.deadline, time.Now()) + "]"
		}
		return "[unlocked]"
	default:
		return ""
	}
}

func (m appModel) renderTasks(tasks []models.Task, p pane, pal palette) string {
	if len(tasks) == 0 {
		return helpStyle.Render("  no tasks") + "\n"
	}

	var b strings.Builder
	for i, task := range tasks {
		check := "[ ]"
		text := fitText(task.Text, 60)
		if task.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}
		line := check + " " + text
		if m.pane == p && i == m.idx {
			b.WriteString(pal.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) feedbackView() string {
	var b strings.Builder
	if len(m.feedback) == 0 {
		b.WriteString(helpStyle.Render("  no feedback yet"))
	}
	for i, fb := range m.feedback {
		cursor := "  "
		if i == m.feedbackIdx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, fb.CreatedAt.Local().Format("2006-01-02 15:04"), fitText(fb.Message, 60))
	}

	return renderPage(titleStyle.Render("Feedback"), b.String(), "n new  d delete  X clear all  esc back")
}

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	content := titleStyle.Render("Build info") + "\n\n" + info.String() + "\n\n" + helpStyle.Render("esc close")
	return overlayBoxStyle.Render(content)
}
