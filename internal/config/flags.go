package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses the client command line. args must not include the
// program name.
//
// Flags:
//
//	-c/-config json file path with configs
//	-d local database path (.json selects the file backend)
//	-auto-lock inactivity window before the private vault locks (e.g. "5m")
//	-log-file client log file path
//	-fingerprint-key password fingerprint HMAC key
//	-feedback-endpoint feedback relay URL
//	-feedback-timeout feedback relay request timeout (e.g. "10s")
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("todo-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var jsonConfigPath string
	var databaseDSN string
	var autoLock time.Duration
	var logFile string
	var fingerprintKey string
	var feedbackEndpoint string
	var feedbackTimeout time.Duration

	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&databaseDSN, "d", "", "Local database path")
	fs.DurationVar(&autoLock, "auto-lock", 0, "Auto-lock timeout (e.g., 5m)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&fingerprintKey, "fingerprint-key", "", "Password fingerprint key")
	fs.StringVar(&feedbackEndpoint, "feedback-endpoint", "", "Feedback relay URL")
	fs.DurationVar(&feedbackTimeout, "feedback-timeout", 0, "Feedback request timeout (e.g., 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			FingerprintKey:  fingerprintKey,
			AutoLockTimeout: autoLock,
			LogFile:         logFile,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Feedback: Feedback{
			Endpoint:       feedbackEndpoint,
			RequestTimeout: feedbackTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
