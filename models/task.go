// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DefaultTaskColor is the display color assigned to newly created tasks.
const DefaultTaskColor = "accent"

// Task is a single to-do entry. The same shape is used for public tasks and
// for tasks held in the private vault; a task is owned by exactly one of the
// two lists at any time.
//
// JSON field names follow the export format of the browser application so
// exported files stay interchangeable.
type Task struct {
	// ID is the client-generated unique identifier (UUIDv7).
	ID string `json:"id"`

	// Text is the trimmed task description.
	Text string `json:"text"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// CreatedAt is the creation time in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`

	// Color is the display color token used by the UI.
	Color string `json:"color"`
}

// TaskFilter narrows a task listing by completion state.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
)

// Matches reports whether t passes the filter. Unknown filters match
// everything.
func (f TaskFilter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// TaskStats summarises task counts across the public list and the resident
// private list.
type TaskStats struct {
	Total     int
	Completed int
}

// CloneTasks returns a copy of tasks that shares no backing array with the
// input. A nil input yields an empty, non-nil slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOfTask returns the position of the task with the given id, or -1.
func IndexOfTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
