package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrEmptyTaskID       = errors.New("task id is required")
	ErrEmptyTaskText     = errors.New("task text is required")
	ErrInvalidTheme      = errors.New("invalid theme")
	ErrInvalidAutoLock   = errors.New("auto-lock minutes must be positive")
	ErrEmptyFeedback     = errors.New("feedback message is required")
	ErrInvalidImportMode = errors.New("invalid import mode")
)
