package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type clientSettingsService struct {
	identityID      string
	records         store.RecordRepository
	session         PrivacySession
	validator       validators.Validator
	defaultAutoLock time.Duration
	logger          *logger.Logger

	mu       sync.Mutex
	settings models.Settings
}

// NewClientSettingsService returns the settings of identityID. defaultAutoLock
// is used whenever the stored settings carry no auto-lock override.
func NewClientSettingsService(
	identityID string,
	settings models.Settings,
	records store.RecordRepository,
	session PrivacySession,
	validator validators.Validator,
	defaultAutoLock time.Duration,
	log *logger.Logger,
) SettingsService {
	if settings.Theme == "" {
		settings.Theme = models.ThemeLight
	}
	return &clientSettingsService{
		identityID:      identityID,
		records:         records,
		session:         session,
		validator:       validator,
		defaultAutoLock: defaultAutoLock,
		logger:          log,
		settings:        settings,
	}
}

func (s *clientSettingsService) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *clientSettingsService) ToggleTheme(ctx context.Context) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	if next.Theme == models.ThemeDark {
		next.Theme = models.ThemeLight
	} else {
		next.Theme = models.ThemeDark
	}

	if err := s.save(ctx, next); err != nil {
		return s.settings, err
	}
	return next, nil
}

func (s *clientSettingsService) SetAutoLockMinutes(ctx context.Context, n int) (models.Settings, error) {
	if n < 1 {
		return s.Settings(), validators.ErrInvalidAutoLock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	next.AutoLockMinutes = n
	if err := s.save(ctx, next); err != nil {
		return s.settings, err
	}
	s.session.SetAutoLockTimeout(s.autoLockLocked())

	s.logger.Info().
		Str("func", "clientSettingsService.SetAutoLockMinutes").
		Str("identity_id", s.identityID).
		Int("minutes", n).
		Msg("auto-lock window changed")

	return next, nil
}

func (s *clientSettingsService) AutoLockTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoLockLocked()
}

func (s *clientSettingsService) autoLockLocked() time.Duration {
	if s.settings.AutoLockMinutes > 0 {
		return time.Duration(s.settings.AutoLockMinutes) * time.Minute
	}
	return s.defaultAutoLock
}

func (s *clientSettingsService) save(ctx context.Context, next models.Settings) error {
	if err := s.validator.Validate(ctx, next); err != nil {
		return err
	}
	if err := s.records.SaveSettings(ctx, s.identityID, next); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.settings = next
	return nil
}
