package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		FingerprintKey  string   `json:"fingerprint_key"`
		AutoLockTimeout Duration `json:"auto_lock_timeout"`
		LogFile         string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Feedback struct {
		Endpoint       string   `json:"endpoint"`
		ServiceID      string   `json:"service_id"`
		TemplateID     string   `json:"template_id"`
		PublicKey      string   `json:"public_key"`
		Recipient      string   `json:"recipient"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"feedback,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			FingerprintKey:  jsonCfg.App.FingerprintKey,
			AutoLockTimeout: time.Duration(jsonCfg.App.AutoLockTimeout),
			LogFile:         jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Feedback: Feedback{
			Endpoint:       jsonCfg.Feedback.Endpoint,
			ServiceID:      jsonCfg.Feedback.ServiceID,
			TemplateID:     jsonCfg.Feedback.TemplateID,
			PublicKey:      jsonCfg.Feedback.PublicKey,
			Recipient:      jsonCfg.Feedback.Recipient,
			RequestTimeout: time.Duration(jsonCfg.Feedback.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
