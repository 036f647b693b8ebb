package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Field name constants accepted by [TaskValidator].
const (
	FieldTaskID   = "id"
	FieldTaskText = "text"
	FieldTheme    = "theme"
	FieldAutoLock = "auto_lock_minutes"
)

// TaskValidator validates models.Task, models.Settings, models.ImportMode and
// models.Feedback values.
type TaskValidator struct {
}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Task:
		return v.validateTask(value, fields...)
	case *models.Task:
		return v.validateTask(*value, fields...)

	case models.Settings:
		return v.validateSettings(value, fields...)
	case *models.Settings:
		return v.validateSettings(*value, fields...)

	case models.ImportMode:
		if value != models.ImportReplace && value != models.ImportAppend {
			return ErrInvalidImportMode
		}
		return nil

	case models.Feedback:
		if strings.TrimSpace(value.Message) == "" {
			return ErrEmptyFeedback
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTask(task models.Task, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTaskID, FieldTaskText}
	}

	for _, f := range fields {
		switch f {
		case FieldTaskID:
			if task.ID == "" {
				return ErrEmptyTaskID
			}
		case FieldTaskText:
			if strings.TrimSpace(task.Text) == "" {
				return ErrEmptyTaskText
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateSettings(s models.Settings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTheme, FieldAutoLock}
	}

	for _, f := range fields {
		switch f {
		case FieldTheme:
			if s.Theme != models.ThemeLight && s.Theme != models.ThemeDark {
				return ErrInvalidTheme
			}
		case FieldAutoLock:
			if s.AutoLockMinutes < 0 {
				return ErrInvalidAutoLock
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
