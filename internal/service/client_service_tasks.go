package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type clientTaskService struct {
	identityID string
	records    store.RecordRepository
	session    PrivacySession
	validator  validators.Validator
	ids        utils.IDGenerator
	logger     *logger.Logger
	now        func() time.Time

	// mu serialises every write of the public list, including the ones the
	// privacy session performs on its behalf.
	mu     sync.Mutex
	public []models.Task
}

func NewClientTaskService(
	identityID string,
	public []models.Task,
	records store.RecordRepository,
	session PrivacySession,
	validator validators.Validator,
	ids utils.IDGenerator,
	log *logger.Logger,
) TaskService {
	return &clientTaskService{
		identityID: identityID,
		records:    records,
		session:    session,
		validator:  validator,
		ids:        ids,
		logger:     log,
		now:        time.Now,
		public:     models.CloneTasks(public),
	}
}

func (t *clientTaskService) Public() []models.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.CloneTasks(t.public)
}

func (t *clientTaskService) List(filter models.TaskFilter, query string) TaskView {
	t.mu.Lock()
	public := models.CloneTasks(t.public)
	t.mu.Unlock()

	view := TaskView{Public: filterTasks(public, filter, query), Private: []models.Task{}}

	private, err := t.session.Tasks()
	if errors.Is(err, ErrLocked) {
		view.PrivateLocked = true
		return view
	}
	view.Private = filterTasks(private, filter, query)

	return view
}

func (t *clientTaskService) Stats() models.TaskStats {
	t.mu.Lock()
	all := models.CloneTasks(t.public)
	t.mu.Unlock()

	if private, err := t.session.Tasks(); err == nil {
		all = append(all, private...)
	}

	stats := models.TaskStats{Total: len(all)}
	for _, task := range all {
		if task.Completed {
			stats.Completed++
		}
	}
	return stats
}

func (t *clientTaskService) Add(ctx context.Context, text string) (models.Task, error) {
	task := models.Task{
		ID:        t.ids.Generate(),
		Text:      strings.TrimSpace(text),
		CreatedAt: t.now().UnixMilli(),
		Color:     models.DefaultTaskColor,
	}
	if err := t.validator.Validate(ctx, task, validators.FieldTaskID, validators.FieldTaskText); err != nil {
		return models.Task{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := append([]models.Task{task}, t.public...)
	if err := t.savePublic(ctx, next); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (t *clientTaskService) Toggle(ctx context.Context, id string) error {
	return t.modify(ctx, id, func(task *models.Task) {
		task.Completed = !task.Completed
	})
}

func (t *clientTaskService) Edit(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	return t.modify(ctx, id, func(task *models.Task) {
		if text != "" {
			task.Text = text
		}
	})
}

func (t *clientTaskService) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := models.IndexOfTask(t.public, id); i >= 0 {
		return t.savePublic(ctx, removeTask(t.public, i))
	}

	if !t.session.CurrentlyUnlocked() {
		return ErrTaskNotFound
	}
	return t.session.UpdatePrivate(ctx, func(private []models.Task) ([]models.Task, error) {
		i := models.IndexOfTask(private, id)
		if i < 0 {
			return nil, ErrTaskNotFound
		}
		return removeTask(private, i), nil
	})
}

func (t *clientTaskService) MakePrivate(ctx context.Context, id string) error {
	switch t.session.State() {
	case models.StateNoPassword:
		return ErrNoPassword
	case models.StateLocked:
		return ErrLocked
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := models.IndexOfTask(t.public, id)
	if i < 0 {
		return ErrTaskNotFound
	}
	task := t.public[i]
	rest := removeTask(t.public, i)

	err := t.session.Transfer(ctx, rest, func(private []models.Task) ([]models.Task, error) {
		return append([]models.Task{task}, private...), nil
	})
	if err != nil {
		return err
	}
	t.public = rest

	return nil
}

func (t *clientTaskService) MakePublic(ctx context.Context, id string) error {
	private, err := t.session.Tasks()
	if err != nil {
		return err
	}
	i := models.IndexOfTask(private, id)
	if i < 0 {
		return ErrTaskNotFound
	}
	task := private[i]

	t.mu.Lock()
	defer t.mu.Unlock()

	next := append([]models.Task{task}, t.public...)
	err = t.session.Transfer(ctx, next, func(private []models.Task) ([]models.Task, error) {
		j := models.IndexOfTask(private, id)
		if j < 0 {
			return nil, ErrTaskNotFound
		}
		return removeTask(private, j), nil
	})
	if err != nil {
		return err
	}
	t.public = next

	return nil
}

func (t *clientTaskService) ClearCompleted(ctx context.Context) error {
	keep := func(task models.Task) bool { return !task.Completed }
	return t.clear(ctx, keep)
}

func (t *clientTaskService) ClearAll(ctx context.Context) error {
	return t.clear(ctx, func(models.Task) bool { return false })
}

func (t *clientTaskService) ResetPrivacyMove(ctx context.Context) ([]models.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// the session appends to the stored public list, which equals t.public
	// while t.mu is held
	moved, err := t.session.ResetAndMove(ctx)
	if err != nil {
		return nil, err
	}
	t.public = append(models.CloneTasks(t.public), moved...)

	return moved, nil
}

// Import merges imported tasks into both lists. Private tasks are only
// touched when the session is unlocked; importing private tasks into a
// locked vault is refused before anything is written.
func (t *clientTaskService) Import(ctx context.Context, public, private []models.Task, mode models.ImportMode) error {
	if err := t.validator.Validate(ctx, mode); err != nil {
		return err
	}

	state := t.session.State()
	if len(private) > 0 {
		switch state {
		case models.StateNoPassword:
			return ErrNoPassword
		case models.StateLocked:
			return ErrLocked
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing := make(map[string]struct{})
	if mode == models.ImportAppend {
		for _, task := range t.public {
			existing[task.ID] = struct{}{}
		}
		if resident, err := t.session.Tasks(); err == nil {
			for _, task := range resident {
				existing[task.ID] = struct{}{}
			}
		}
	}
	public = t.sanitize(public, existing)
	private = t.sanitize(private, existing)

	nextPublic := public
	if mode == models.ImportAppend {
		nextPublic = append(models.CloneTasks(t.public), public...)
	}

	if state != models.StateUnlocked {
		if err := t.savePublic(ctx, nextPublic); err != nil {
			return err
		}
		t.logImport(mode, len(public), 0)
		return nil
	}

	err := t.session.Transfer(ctx, nextPublic, func(current []models.Task) ([]models.Task, error) {
		if mode == models.ImportAppend {
			return append(current, private...), nil
		}
		return private, nil
	})
	if err != nil {
		return err
	}
	t.public = nextPublic
	t.logImport(mode, len(public), len(private))

	return nil
}

func (t *clientTaskService) logImport(mode models.ImportMode, public, private int) {
	t.logger.Info().
		Str("func", "clientTaskService.Import").
		Str("identity_id", t.identityID).
		Str("mode", string(mode)).
		Int("public", public).
		Int("private", private).
		Msg("tasks imported")
}

// sanitize drops blank tasks, trims text, fills missing fields and gives a
// fresh id to every task whose id is missing or already taken.
func (t *clientTaskService) sanitize(tasks []models.Task, taken map[string]struct{}) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		task.Text = strings.TrimSpace(task.Text)
		if task.Text == "" {
			continue
		}
		if _, dup := taken[task.ID]; task.ID == "" || dup {
			task.ID = t.ids.Generate()
		}
		if task.Color == "" {
			task.Color = models.DefaultTaskColor
		}
		if task.CreatedAt == 0 {
			task.CreatedAt = t.now().UnixMilli()
		}
		taken[task.ID] = struct{}{}
		out = append(out, task)
	}
	return out
}

func (t *clientTaskService) modify(ctx context.Context, id string, fn func(task *models.Task)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := models.IndexOfTask(t.public, id); i >= 0 {
		next := models.CloneTasks(t.public)
		fn(&next[i])
		return t.savePublic(ctx, next)
	}

	if !t.session.CurrentlyUnlocked() {
		return ErrTaskNotFound
	}
	return t.session.UpdatePrivate(ctx, func(private []models.Task) ([]models.Task, error) {
		i := models.IndexOfTask(private, id)
		if i < 0 {
			return nil, ErrTaskNotFound
		}
		fn(&private[i])
		return private, nil
	})
}

func (t *clientTaskService) clear(ctx context.Context, keep func(models.Task) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := keepTasks(t.public, keep)

	if !t.session.CurrentlyUnlocked() {
		return t.savePublic(ctx, next)
	}

	err := t.session.Transfer(ctx, next, func(private []models.Task) ([]models.Task, error) {
		return keepTasks(private, keep), nil
	})
	if err != nil {
		return err
	}
	t.public = next

	return nil
}

// savePublic persists next and adopts it. t.mu must be held.
func (t *clientTaskService) savePublic(ctx context.Context, next []models.Task) error {
	if err := t.records.SaveTasks(ctx, t.identityID, next); err != nil {
		t.logger.Err(err).
			Str("func", "clientTaskService.savePublic").
			Str("identity_id", t.identityID).
			Msg("failed to save public tasks")
		return fmt.Errorf("save tasks: %w", err)
	}
	t.public = next
	return nil
}

func filterTasks(tasks []models.Task, filter models.TaskFilter, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if !filter.Matches(task) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(task.Text), query) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func keepTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out
}

func removeTask(tasks []models.Task, i int) []models.Task {
	out := make([]models.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}
