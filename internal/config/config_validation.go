// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants every runtime relies on.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AutoLockTimeout < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

// validate checks the client view. A zero auto-lock timeout is rejected;
// feedback settings are only checked when relaying is enabled.
func (cfg *ClientConfig) validate() error {
	if cfg.App.AutoLockTimeout <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Feedback.Enabled {
		f := cfg.Feedback
		if f.ServiceID == "" || f.TemplateID == "" || f.PublicKey == "" || f.Recipient == "" {
			return ErrInvalidFeedbackConfigs
		}
		u, err := url.Parse(f.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidFeedbackConfigs
		}
		if f.RequestTimeout <= 0 {
			return ErrInvalidFeedbackConfigs
		}
	}

	return nil
}
