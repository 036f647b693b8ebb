package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive auto-lock timeout).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidFeedbackConfigs indicates partially configured feedback
	// relay credentials or an unusable endpoint.
	ErrInvalidFeedbackConfigs = errors.New("invalid feedback configuration")
)
