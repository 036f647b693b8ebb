package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type screen int

const (
	screenTasks screen = iota
	screenFeedback
)

type pane int

const (
	panePublic pane = iota
	panePrivate
)

// statusTTL is how long a status line stays visible.
const statusTTL = 3 * time.Second

// notifier forwards lock notifications into the running program. The
// privacy session calls its listener after releasing its locks, but the
// listener may still run on a goroutine that the program is waiting on, so
// Send is always issued from a fresh goroutine.
type notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

func (n *notifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

func (n *notifier) send(msg tea.Msg) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (n *notifier) listen(ws *service.Workspace) {
	id := ws.Identity.ID
	ws.Session.SetLockListener(func(reason models.LockReason) {
		go n.send(lockedMsg{identityID: id, reason: reason})
	})
}

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	ws        *service.Workspace
	notify    *notifier
	logger    *logger.Logger
	buildInfo models.AppBuildInfo

	screen screen
	pane   pane
	idx    int
	filter models.TaskFilter
	query  string

	view     service.TaskView
	stats    models.TaskStats
	state    models.PrivacyState
	settings models.Settings
	deadline time.Time

	feedback    []models.Feedback
	feedbackIdx int

	prompt        promptModel
	confirm       confirmModel
	showBuildInfo bool

	status    string
	statusErr bool
	statusSeq int
}

func newAppModel(
	ctx context.Context,
	services *service.ClientServices,
	ws *service.Workspace,
	n *notifier,
	buildInfo models.AppBuildInfo,
	log *logger.Logger,
) appModel {
	n.listen(ws)
	m := appModel{
		ctx:       ctx,
		services:  services,
		ws:        ws,
		notify:    n,
		logger:    log,
		buildInfo: buildInfo,
		filter:    models.FilterAll,
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd {
	return cmdTick()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.ws.Session.Touch()
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.ws.Session.Touch()
		return m, nil

	case tea.BlurMsg:
		m.ws.Session.FocusLost()
		m.refresh()
		return m, nil

	case lockedMsg:
		if msg.identityID != m.ws.Identity.ID {
			return m, nil
		}
		m.closePrivatePrompts()
		m.refresh()
		return m, m.setStatus(lockStatus(msg.reason), false)

	case opDoneMsg:
		m.refresh()
		if msg.err != nil {
			return m, m.setStatus(app.MessageFor(msg.err), true)
		}
		if m.screen == screenFeedback {
			return m, tea.Batch(m.setStatus(msg.status, false), m.cmdLoadFeedback())
		}
		return m, m.setStatus(msg.status, false)

	case workspaceMsg:
		if msg.err != nil {
			return m, m.setStatus(workspaceError(msg.err), true)
		}
		m.ws = msg.ws
		m.notify.listen(m.ws)
		m.pane, m.idx, m.query = panePublic, 0, ""
		m.screen = screenTasks
		m.refresh()
		return m, m.setStatus(msg.status, false)

	case feedbackLoadedMsg:
		if msg.err != nil {
			return m, m.setStatus(app.MessageFor(msg.err), true)
		}
		m.feedback = msg.items
		m.feedbackIdx = clamp(m.feedbackIdx, len(m.feedback))
		return m, nil

	case tickMsg:
		m.refresh()
		return m, cmdTick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.prompt.active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}
	if m.confirm.active() {
		return m.updateConfirm(msg)
	}
	if m.prompt.active() {
		return m.updatePrompt(msg)
	}
	if m.screen == screenFeedback {
		return m.updateFeedback(msg)
	}
	return m.updateTasks(msg)
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, selected := m.selected()

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.paneTasks())-1 {
			m.idx++
		}
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
		if m.pane == panePublic {
			m.pane = panePrivate
		} else {
			m.pane = panePublic
		}
		m.idx = 0
	case key.Matches(msg, keys.add):
		m.prompt = newPrompt(promptAdd, "New task", false, "Task")
	case key.Matches(msg, keys.edit):
		if selected {
			m.prompt = newPrompt(promptEdit, "Edit task", false, "Task").withValue(task.Text)
			m.prompt.target = task.ID
		}
	case key.Matches(msg, keys.toggle):
		if selected {
			return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
				return ws.Tasks.Toggle(ctx, task.ID)
			})
		}
	case key.Matches(msg, keys.delete):
		if selected {
			m.confirm = confirmModel{kind: confirmDelete, message: "Delete \"" + fitText(task.Text, 40) + "\"?", target: task.ID}
		}
	case key.Matches(msg, keys.move):
		return m.moveSelected(task, selected)
	case key.Matches(msg, keys.copy):
		if selected {
			return m, cmdCopyToClipboard(task.Text)
		}
	case key.Matches(msg, keys.search):
		m.prompt = newPrompt(promptSearch, "Search tasks", false, "Text").withValue(m.query)
	case key.Matches(msg, keys.filter):
		m.filter = nextFilter(m.filter)
		m.idx = 0
		m.refresh()
	case key.Matches(msg, keys.privacy):
		return m.privacyAction()
	case key.Matches(msg, keys.changePw):
		if m.state == models.StateNoPassword {
			return m, m.setStatus(app.MsgNoPassword, true)
		}
		m.prompt = newPrompt(promptChangePassword, "Change password", true, "Current password", "New password", "Confirm new password")
	case key.Matches(msg, keys.reset):
		if m.state == models.StateNoPassword {
			return m, m.setStatus(app.MsgNoPassword, true)
		}
		m.confirm = confirmModel{kind: confirmReset, message: "Remove the privacy password?\nPrivate tasks can be moved to the public list (requires unlock) or deleted."}
	case key.Matches(msg, keys.clearDone):
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			return ws.Tasks.ClearCompleted(ctx)
		})
	case key.Matches(msg, keys.clearAll):
		m.confirm = confirmModel{kind: confirmClearAll, message: "Delete ALL tasks? Locked private tasks are kept."}
	case key.Matches(msg, keys.export):
		name := "todo-export-" + time.Now().Format("2006-01-02") + ".json"
		m.prompt = newPrompt(promptExport, "Export tasks", false, "File").withValue(name)
	case key.Matches(msg, keys.importFile):
		m.prompt = newPrompt(promptImport, "Import tasks", false, "File")
	case key.Matches(msg, keys.theme):
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			_, err := ws.Settings.ToggleTheme(ctx)
			return err
		})
	case key.Matches(msg, keys.autoLock):
		minutes := strconv.Itoa(int(m.ws.Settings.AutoLockTimeout() / time.Minute))
		m.prompt = newPrompt(promptAutoLock, "Auto-lock after (minutes)", false, "Minutes").withValue(minutes)
	case key.Matches(msg, keys.feedback):
		m.screen = screenFeedback
		m.feedbackIdx = 0
		return m, m.cmdLoadFeedback()
	case key.Matches(msg, keys.signIn):
		m.prompt = newPrompt(promptSignIn, "Sign in with ID token", false, "Credential")
	case key.Matches(msg, keys.signOut):
		if m.ws.Identity.IsGuest() {
			return m, nil
		}
		return m, m.cmdSwitchIdentity(app.MsgSignedOut, func(ctx context.Context) (models.Identity, error) {
			return m.services.IdentityService.SignOut(ctx)
		})
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}

	return m, nil
}

func (m appModel) moveSelected(task models.Task, selected bool) (tea.Model, tea.Cmd) {
	if !selected {
		return m, nil
	}
	if m.pane == panePublic {
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			return ws.Tasks.MakePrivate(ctx, task.ID)
		})
	}
	return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
		return ws.Tasks.MakePublic(ctx, task.ID)
	})
}

// privacyAction sets a password, unlocks or locks depending on the state.
func (m appModel) privacyAction() (tea.Model, tea.Cmd) {
	switch m.state {
	case models.StateNoPassword:
		m.prompt = newPrompt(promptSetPassword, "Set privacy password", true, "Password", "Confirm password")
	case models.StateLocked:
		m.prompt = newPrompt(promptUnlock, "Unlock private tasks", true, "Password")
	case models.StateUnlocked:
		m.ws.Session.Lock(models.LockManual)
		m.refresh()
	}
	return m, nil
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.prompt = promptModel{}
		return m, nil
	case key.Matches(msg, keys.tab):
		m.prompt = m.prompt.focusNext(1)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.prompt = m.prompt.focusNext(-1)
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.prompt.focus < len(m.prompt.inputs)-1 {
			m.prompt = m.prompt.focusNext(1)
			return m, nil
		}
		p := m.prompt
		m.prompt = promptModel{}
		return m.submitPrompt(p)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.update(msg)
	return m, cmd
}

func (m appModel) submitPrompt(p promptModel) (tea.Model, tea.Cmd) {
	first := p.value(0)

	switch p.kind {
	case promptAdd:
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			_, err := ws.Tasks.Add(ctx, first)
			return err
		})
	case promptEdit:
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			return ws.Tasks.Edit(ctx, p.target, first)
		})
	case promptSearch:
		m.query = strings.TrimSpace(first)
		m.idx = 0
		m.refresh()
	case promptSetPassword:
		return m, m.run(app.MsgPasswordSet, func(ctx context.Context, ws *service.Workspace) error {
			return ws.Session.SetPassword(ctx, first, p.value(1))
		})
	case promptUnlock:
		return m, m.run(app.MsgUnlocked, func(ctx context.Context, ws *service.Workspace) error {
			_, err := ws.Session.Unlock(ctx, first)
			return err
		})
	case promptChangePassword:
		return m, m.run(app.MsgPasswordChanged, func(ctx context.Context, ws *service.Workspace) error {
			return ws.Session.ChangePassword(ctx, first, p.value(1), p.value(2))
		})
	case promptAutoLock:
		n, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return m, m.setStatus(app.MsgInvalidAutoLock, true)
		}
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			_, err := ws.Settings.SetAutoLockMinutes(ctx, n)
			return err
		})
	case promptSignIn:
		return m, m.cmdSwitchIdentity(app.MsgSignedIn, func(ctx context.Context) (models.Identity, error) {
			return m.services.IdentityService.SignIn(ctx, first)
		})
	case promptFeedback:
		return m, m.cmdSubmitFeedback(first)
	case promptExport:
		return m, m.cmdExport(strings.TrimSpace(first))
	case promptImport:
		path := strings.TrimSpace(first)
		if path == "" {
			return m, nil
		}
		m.confirm = confirmModel{kind: confirmImportMode, message: "Replace existing tasks with the imported ones?", target: path}
	}

	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm

	if key.Matches(msg, keys.esc) {
		m.confirm = confirmModel{}
		return m, nil
	}

	switch c.kind {
	case confirmReset:
		switch {
		case key.Matches(msg, keys.resetMove):
			m.confirm = confirmModel{}
			return m, m.run(app.MsgResetMoved, func(ctx context.Context, ws *service.Workspace) error {
				_, err := ws.Tasks.ResetPrivacyMove(ctx)
				return err
			})
		case key.Matches(msg, keys.resetDrop):
			m.confirm = confirmModel{kind: confirmResetDelete, message: "Permanently delete all private tasks?"}
		}
		return m, nil

	case confirmImportMode:
		mode := models.ImportMode("")
		switch {
		case key.Matches(msg, keys.yes):
			mode = models.ImportReplace
		case key.Matches(msg, keys.no):
			mode = models.ImportAppend
		default:
			return m, nil
		}
		m.confirm = confirmModel{}
		return m, m.cmdImport(c.target, mode)
	}

	if key.Matches(msg, keys.no) {
		m.confirm = confirmModel{}
		return m, nil
	}
	if !key.Matches(msg, keys.yes) {
		return m, nil
	}
	m.confirm = confirmModel{}

	switch c.kind {
	case confirmDelete:
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			return ws.Tasks.Delete(ctx, c.target)
		})
	case confirmClearAll:
		return m, m.run("", func(ctx context.Context, ws *service.Workspace) error {
			return ws.Tasks.ClearAll(ctx)
		})
	case confirmResetDelete:
		return m, m.run(app.MsgResetDeleted, func(ctx context.Context, ws *service.Workspace) error {
			return ws.Session.ResetAndDelete(ctx, true)
		})
	case confirmFeedbackClear:
		id := m.ws.Identity.ID
		return m, m.runFeedback("", func(ctx context.Context, fs service.FeedbackService) error {
			return fs.Clear(ctx, id)
		})
	}

	return m, nil
}

func (m appModel) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit), key.Matches(msg, keys.esc):
		m.screen = screenTasks
	case key.Matches(msg, keys.up):
		if m.feedbackIdx > 0 {
			m.feedbackIdx--
		}
	case key.Matches(msg, keys.down):
		if m.feedbackIdx < len(m.feedback)-1 {
			m.feedbackIdx++
		}
	case key.Matches(msg, keys.add):
		m.prompt = newPrompt(promptFeedback, "Send feedback", false, "Message")
	case key.Matches(msg, keys.delete):
		if len(m.feedback) == 0 {
			return m, nil
		}
		id, fbID := m.ws.Identity.ID, m.feedback[m.feedbackIdx].ID
		return m, m.runFeedback("", func(ctx context.Context, fs service.FeedbackService) error {
			return fs.Delete(ctx, id, fbID)
		})
	case key.Matches(msg, keys.clearAll):
		if len(m.feedback) > 0 {
			m.confirm = confirmModel{kind: confirmFeedbackClear, message: "Delete all feedback?"}
		}
	}
	return m, nil
}

// refresh re-reads everything the view renders from the workspace.
func (m *appModel) refresh() {
	m.view = m.ws.Tasks.List(m.filter, m.query)
	m.stats = m.ws.Tasks.Stats()
	m.state = m.ws.Session.State()
	m.settings = m.ws.Settings.Settings()
	m.deadline = time.Time{}
	if d, ok := m.ws.Session.AutoLockDeadline(); ok {
		m.deadline = d
	}
	m.idx = clamp(m.idx, len(m.paneTasks()))
}

// closePrivatePrompts drops overlays that only make sense while unlocked.
func (m *appModel) closePrivatePrompts() {
	if m.prompt.kind == promptEdit && m.pane == panePrivate {
		m.prompt = promptModel{}
	}
	if m.confirm.kind == confirmDelete && m.pane == panePrivate {
		m.confirm = confirmModel{}
	}
}

func (m *appModel) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	if text == "" {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m appModel) paneTasks() []models.Task {
	if m.pane == panePrivate {
		return m.view.Private
	}
	return m.view.Public
}

func (m appModel) selected() (models.Task, bool) {
	tasks := m.paneTasks()
	if m.idx < 0 || m.idx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.idx], true
}

func nextFilter(f models.TaskFilter) models.TaskFilter {
	switch f {
	case models.FilterAll:
		return models.FilterActive
	case models.FilterActive:
		return models.FilterCompleted
	default:
		return models.FilterAll
	}
}

func lockStatus(reason models.LockReason) string {
	switch reason {
	case models.LockInactivity:
		return app.MsgLockedInactivity
	case models.LockFocusLost:
		return app.MsgLockedFocusLost
	case models.LockReset:
		return ""
	default:
		return app.MsgLockedManual
	}
}

func workspaceError(err error) string {
	if errors.Is(err, service.ErrInvalidCredential) {
		return app.MsgInvalidIdentity
	}
	return app.MessageFor(err)
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
