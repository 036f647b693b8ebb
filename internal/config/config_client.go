package config

import (
	"fmt"
	"time"
)

// ClientApp holds the privacy settings of the client runtime.
type ClientApp struct {
	// FingerprintKey keys password fingerprints. Empty selects the built-in
	// key of the crypto package.
	FingerprintKey string
	// AutoLockTimeout is the inactivity window of an unlocked vault.
	AutoLockTimeout time.Duration
	// LogFile is the client log path; empty means next to the executable.
	LogFile string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite path, a *.json file path, or ":memory:".
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientFeedback holds the feedback relay settings.
type ClientFeedback struct {
	Enabled        bool
	Endpoint       string
	ServiceID      string
	TemplateID     string
	PublicKey      string
	Recipient      string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains privacy and runtime settings.
	App ClientApp
	// Storage contains client storage settings.
	Storage ClientStorage
	// Feedback contains relay settings.
	Feedback ClientFeedback
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			FingerprintKey:  cfg.App.FingerprintKey,
			AutoLockTimeout: cfg.App.AutoLockTimeout,
			LogFile:         cfg.App.LogFile,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Feedback: ClientFeedback{
			Enabled:        cfg.Feedback.Enabled(),
			Endpoint:       cfg.Feedback.Endpoint,
			ServiceID:      cfg.Feedback.ServiceID,
			TemplateID:     cfg.Feedback.TemplateID,
			PublicKey:      cfg.Feedback.PublicKey,
			Recipient:      cfg.Feedback.Recipient,
			RequestTimeout: cfg.Feedback.RequestTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}
