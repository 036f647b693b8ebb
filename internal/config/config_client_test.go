package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() *ClientConfig {
	return &ClientConfig{
		App:     ClientApp{AutoLockTimeout: 5 * time.Minute},
		Storage: ClientStorage{DB: ClientDB{DSN: "todo.db"}},
		Feedback: ClientFeedback{
			Endpoint:       DefaultFeedbackEndpoint,
			RequestTimeout: time.Second,
		},
	}
}

func TestGetClientConfig_Defaults(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAutoLockTimeout, cfg.App.AutoLockTimeout)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.False(t, cfg.Feedback.Enabled)
}

func TestGetClientConfig_BadFlags(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg, err := GetClientConfig([]string{"-nope"})
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "zero auto-lock", mutate: func(c *ClientConfig) { c.App.AutoLockTimeout = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn allowed", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }},
		{
			name: "feedback fully configured",
			mutate: func(c *ClientConfig) {
				c.Feedback.Enabled = true
				c.Feedback.ServiceID, c.Feedback.TemplateID, c.Feedback.PublicKey = "s", "t", "p"
				c.Feedback.Recipient = "me@example.com"
			},
		},
		{
			name: "feedback missing template",
			mutate: func(c *ClientConfig) {
				c.Feedback.Enabled = true
				c.Feedback.ServiceID, c.Feedback.PublicKey = "s", "p"
				c.Feedback.Recipient = "me@example.com"
			},
			wantErr: ErrInvalidFeedbackConfigs,
		},
		{
			name: "feedback bad endpoint",
			mutate: func(c *ClientConfig) {
				c.Feedback.Enabled = true
				c.Feedback.ServiceID, c.Feedback.TemplateID, c.Feedback.PublicKey = "s", "t", "p"
				c.Feedback.Recipient = "me@example.com"
				c.Feedback.Endpoint = "not a url"
			},
			wantErr: ErrInvalidFeedbackConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
