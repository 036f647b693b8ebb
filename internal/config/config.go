// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default values applied when no source sets a field.
const (
	DefaultAutoLockTimeout  = 5 * time.Minute
	DefaultDSN              = "todo-keeper.db"
	DefaultFeedbackEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultFeedbackTimeout  = 10 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// go-todo-keeper application. It is populated by merging values from
// command-line flags, environment variables, an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds privacy and runtime settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Feedback holds the e-mail relay settings of the feedback form.
	Feedback Feedback `envPrefix:"FEEDBACK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// FingerprintKey keys the HMAC used to fingerprint privacy passwords.
	// Changing it invalidates every stored fingerprint.
	// Env: APP_FINGERPRINT_KEY
	FingerprintKey string `env:"FINGERPRINT_KEY"`

	// AutoLockTimeout is the inactivity window after which an unlocked
	// private vault is locked (e.g. "5m").
	// Env: APP_AUTO_LOCK_TIMEOUT
	AutoLockTimeout time.Duration `env:"AUTO_LOCK_TIMEOUT"`

	// LogFile is the path of the client log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the location of the local record store.
type DB struct {
	// DSN is the SQLite database path. A path ending in ".json" selects the
	// JSON file backend; ":memory:" keeps everything in process memory.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Feedback holds the settings of the EmailJS-compatible relay. Leaving
// ServiceID, TemplateID and PublicKey empty disables relaying; feedback is
// still stored locally.
type Feedback struct {
	// Env: FEEDBACK_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: FEEDBACK_SERVICE_ID
	ServiceID string `env:"SERVICE_ID"`
	// Env: FEEDBACK_TEMPLATE_ID
	TemplateID string `env:"TEMPLATE_ID"`
	// Env: FEEDBACK_PUBLIC_KEY
	PublicKey string `env:"PUBLIC_KEY"`
	// Env: FEEDBACK_RECIPIENT
	Recipient string `env:"RECIPIENT"`
	// Env: FEEDBACK_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Enabled reports whether relay credentials are configured.
func (f Feedback) Enabled() bool {
	return f.ServiceID != "" || f.TemplateID != "" || f.PublicKey != ""
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. For every field the first non-zero value wins, in this
// order:
//  1. Command-line flags (args, without the program name)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AutoLockTimeout: DefaultAutoLockTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Feedback: Feedback{
			Endpoint:       DefaultFeedbackEndpoint,
			RequestTimeout: DefaultFeedbackTimeout,
		},
	}
}
