// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/internal/workers"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type privacySession struct {
	identityID string
	records    store.RecordRepository
	keys       crypto.KeyChainService
	validator  validators.Validator
	logger     *logger.Logger
	timer      workers.Timer

	mu       sync.Mutex
	busy     bool
	closed   bool
	state    models.PrivacyState
	vault    models.VaultRecord
	key      *memguard.Enclave
	tasks    []models.Task
	timeout  time.Duration
	listener func(models.LockReason)

	// pendingLock is a lock requested while busy; notify is a reason to
	// report once the running transition ends.
	pendingLock models.LockReason
	notify      models.LockReason
}

// NewPrivacySession returns a session for the vault of identityID. The
// session starts Locked when a password is set and NoPassword otherwise; it
// is never Unlocked right after loading.
func NewPrivacySession(
	identityID string,
	vault models.VaultRecord,
	records store.RecordRepository,
	keys crypto.KeyChainService,
	validator validators.Validator,
	autoLock time.Duration,
	log *logger.Logger,
) PrivacySession {
	s := &privacySession{
		identityID: identityID,
		records:    records,
		keys:       keys,
		validator:  validator,
		logger:     log,
		vault:      vault,
		timeout:    autoLock,
		state:      models.StateNoPassword,
	}
	if vault.IsProtected() {
		s.state = models.StateLocked
	}
	s.timer = workers.NewIdleTimer(s.expire)

	return s
}

func (s *privacySession) IdentityID() string {
	return s.identityID
}

func (s *privacySession) State() models.PrivacyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *privacySession) IsProtected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.IsProtected()
}

func (s *privacySession) CurrentlyUnlocked() bool {
	return s.State() == models.StateUnlocked
}

func (s *privacySession) Tasks() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.StateLocked:
		return nil, ErrLocked
	case models.StateUnlocked:
		return models.CloneTasks(s.tasks), nil
	default:
		return []models.Task{}, nil
	}
}

func (s *privacySession) AutoLockDeadline() (time.Time, bool) {
	return s.timer.Deadline()
}

func (s *privacySession) SetPassword(ctx context.Context, password, confirmation string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.state != models.StateNoPassword {
		return ErrPasswordAlreadySet
	}

	req := models.PasswordSetRequest{Password: password, Confirmation: confirmation}
	if err := s.validator.Validate(ctx, req); err != nil {
		s.logger.Warn().
			Str("func", "privacySession.SetPassword").
			Str("identity_id", s.identityID).
			Err(err).
			Msg("password rejected")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// legacy plaintext private tasks are encrypted and dropped from the
	// plaintext column in the same write
	vault, key, err := s.seal(password, s.vault.LegacyTasks)
	if err != nil {
		return err
	}
	memguard.WipeBytes(key)

	if err := s.records.SaveVault(ctx, s.identityID, vault); err != nil {
		s.logger.Err(err).
			Str("func", "privacySession.SetPassword").
			Str("identity_id", s.identityID).
			Msg("failed to persist vault")
		return fmt.Errorf("save vault: %w", err)
	}

	s.mu.Lock()
	s.vault = vault
	s.state = models.StateLocked
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "privacySession.SetPassword").
		Str("identity_id", s.identityID).
		Msg("privacy password set")

	return nil
}

func (s *privacySession) Unlock(ctx context.Context, password string) ([]models.Task, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if s.state == models.StateNoPassword {
		return nil, ErrNoPassword
	}

	// checked in every protected state, including Unlocked
	if !s.keys.VerifyFingerprint(password, s.vault.Fingerprint) {
		s.logger.Warn().
			Str("func", "privacySession.Unlock").
			Str("identity_id", s.identityID).
			Str("state", s.state.String()).
			Msg("wrong privacy password")
		return nil, ErrInvalidCredential
	}
	if s.state == models.StateUnlocked {
		return models.CloneTasks(s.tasks), nil
	}

	tasks, key, err := s.readVault(password, s.vault)
	if err != nil {
		s.logger.Err(err).
			Str("func", "privacySession.Unlock").
			Str("identity_id", s.identityID).
			Str("vault", s.vault.Kind().String()).
			Msg("failed to open vault")
		return nil, err
	}

	vault := s.vault
	if key == nil {
		// legacy plaintext record: encrypt it now
		vault, key, err = s.seal(password, tasks)
		if err != nil {
			return nil, err
		}
		if err := s.records.SaveVault(ctx, s.identityID, vault); err != nil {
			memguard.WipeBytes(key)
			return nil, fmt.Errorf("save migrated vault: %w", err)
		}
		s.logger.Info().
			Str("func", "privacySession.Unlock").
			Str("identity_id", s.identityID).
			Msg("legacy private tasks migrated to encrypted vault")
	}

	s.mu.Lock()
	s.vault = vault
	s.key = memguard.NewEnclave(key)
	s.tasks = tasks
	s.state = models.StateUnlocked
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "privacySession.Unlock").
		Str("identity_id", s.identityID).
		Int("tasks", len(tasks)).
		Msg("privacy session unlocked")

	return models.CloneTasks(tasks), nil
}

func (s *privacySession) Lock(reason models.LockReason) {
	s.lockIf(reason, nil)
}

// expire is the auto-lock callback. It locks only if window is still the
// timer's latest window, so activity that re-armed the timer while the
// callback was starting wins.
func (s *privacySession) expire(window uint64) {
	s.lockIf(models.LockInactivity, func() bool { return s.timer.Current(window) })
}

// lockIf locks the session when cond, evaluated under s.mu, holds. A nil
// cond always holds.
func (s *privacySession) lockIf(reason models.LockReason, cond func() bool) {
	s.mu.Lock()
	if cond != nil && !cond() {
		s.mu.Unlock()
		return
	}
	if s.busy {
		if s.pendingLock == "" {
			s.pendingLock = reason
		}
		s.mu.Unlock()
		return
	}
	locked := s.lockLocked()
	listener := s.listener
	s.mu.Unlock()

	if locked {
		s.logger.Info().
			Str("func", "privacySession.Lock").
			Str("identity_id", s.identityID).
			Str("reason", string(reason)).
			Msg("privacy session locked")
		if listener != nil {
			listener(reason)
		}
	}
}

func (s *privacySession) ChangePassword(ctx context.Context, current, next, confirmation string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.state == models.StateNoPassword {
		return ErrNoPassword
	}

	req := models.PasswordChangeRequest{Current: current, New: next, Confirmation: confirmation}
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if !s.keys.VerifyFingerprint(current, s.vault.Fingerprint) {
		s.logger.Warn().
			Str("func", "privacySession.ChangePassword").
			Str("identity_id", s.identityID).
			Msg("wrong current privacy password")
		return ErrInvalidCredential
	}

	var tasks []models.Task
	if s.state == models.StateUnlocked {
		tasks = models.CloneTasks(s.tasks)
	} else {
		plain, oldKey, err := s.readVault(current, s.vault)
		if err != nil {
			return err
		}
		memguard.WipeBytes(oldKey)
		tasks = plain
	}

	// the whole new record is built before anything is written
	vault, key, err := s.seal(next, tasks)
	if err != nil {
		return err
	}
	if err := s.records.SaveVault(ctx, s.identityID, vault); err != nil {
		memguard.WipeBytes(key)
		s.logger.Err(err).
			Str("func", "privacySession.ChangePassword").
			Str("identity_id", s.identityID).
			Msg("failed to persist re-encrypted vault")
		return fmt.Errorf("save vault: %w", err)
	}

	s.mu.Lock()
	s.vault = vault
	s.key = memguard.NewEnclave(key)
	s.tasks = tasks
	s.state = models.StateUnlocked
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "privacySession.ChangePassword").
		Str("identity_id", s.identityID).
		Msg("privacy password changed")

	return nil
}

func (s *privacySession) ResetAndMove(ctx context.Context) ([]models.Task, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	switch s.state {
	case models.StateNoPassword:
		return nil, ErrNoPassword
	case models.StateLocked:
		return nil, ErrLocked
	}

	rec, err := s.records.GetRecord(ctx, s.identityID)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}

	moved := models.CloneTasks(s.tasks)
	public := append(models.CloneTasks(rec.Tasks), moved...)

	if err := s.records.SaveTasksAndVault(ctx, s.identityID, public, models.VaultRecord{}); err != nil {
		s.logger.Err(err).
			Str("func", "privacySession.ResetAndMove").
			Str("identity_id", s.identityID).
			Msg("failed to persist reset")
		return nil, fmt.Errorf("save tasks and vault: %w", err)
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "privacySession.ResetAndMove").
		Str("identity_id", s.identityID).
		Int("moved", len(moved)).
		Msg("privacy password removed, private tasks moved to public")

	return moved, nil
}

func (s *privacySession) ResetAndDelete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.state == models.StateNoPassword && s.vault.Kind() == models.VaultEmpty {
		return ErrNoPassword
	}

	if err := s.records.SaveVault(ctx, s.identityID, models.VaultRecord{}); err != nil {
		s.logger.Err(err).
			Str("func", "privacySession.ResetAndDelete").
			Str("identity_id", s.identityID).
			Msg("failed to persist reset")
		return fmt.Errorf("save vault: %w", err)
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "privacySession.ResetAndDelete").
		Str("identity_id", s.identityID).
		Msg("privacy password removed, private tasks deleted")

	return nil
}

func (s *privacySession) UpdatePrivate(ctx context.Context, fn PrivateTasksFunc) error {
	return s.rewrite(ctx, "privacySession.UpdatePrivate", fn, func(vault models.VaultRecord) error {
		return s.records.SaveVault(ctx, s.identityID, vault)
	})
}

func (s *privacySession) Transfer(ctx context.Context, public []models.Task, fn PrivateTasksFunc) error {
	return s.rewrite(ctx, "privacySession.Transfer", fn, func(vault models.VaultRecord) error {
		return s.records.SaveTasksAndVault(ctx, s.identityID, public, vault)
	})
}

func (s *privacySession) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.StateUnlocked && !s.busy && !s.closed {
		s.timer.Arm(s.timeout)
	}
}

func (s *privacySession) FocusLost() {
	s.Lock(models.LockFocusLost)
}

func (s *privacySession) SetLockListener(fn func(reason models.LockReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

func (s *privacySession) SetAutoLockTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = d
}

func (s *privacySession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.busy {
		s.pendingLock = models.LockShutdown
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.Lock(models.LockShutdown)
	s.timer.Stop()
}

// begin marks the session busy and cancels the auto-lock timer. Only the
// goroutine that holds the busy mark mutates state, key or tasks.
func (s *privacySession) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.busy {
		return ErrConcurrentOperation
	}
	s.busy = true
	s.timer.Stop()

	return nil
}

// end applies a lock deferred during the transition, re-arms the timer when
// the session is still unlocked and clears the busy mark.
func (s *privacySession) end() {
	s.mu.Lock()
	reason := s.notify
	s.notify = ""
	if s.pendingLock != "" {
		if s.lockLocked() {
			reason = s.pendingLock
		}
		s.pendingLock = ""
	}
	if s.state == models.StateUnlocked {
		s.timer.Arm(s.timeout)
	} else {
		s.timer.Stop()
	}
	s.busy = false
	listener := s.listener
	s.mu.Unlock()

	if reason != "" {
		s.logger.Info().
			Str("func", "privacySession.end").
			Str("identity_id", s.identityID).
			Str("reason", string(reason)).
			Msg("privacy session locked")
		if listener != nil {
			listener(reason)
		}
	}
}

// rewrite re-encrypts the result of fn under the active key and hands the
// new vault to save. State is only updated after save succeeds.
func (s *privacySession) rewrite(ctx context.Context, fnName string, fn PrivateTasksFunc, save func(models.VaultRecord) error) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	switch s.state {
	case models.StateNoPassword:
		return ErrNoPassword
	case models.StateLocked:
		return ErrLocked
	}

	next, err := fn(models.CloneTasks(s.tasks))
	if err != nil {
		return err
	}
	next = models.CloneTasks(next)

	var payload models.EncryptedPayload
	err = s.withKey(func(key []byte) error {
		var err error
		payload, err = s.keys.EncryptTasks(key, next)
		return err
	})
	if err != nil {
		return fmt.Errorf("encrypt private tasks: %w", err)
	}

	vault := models.VaultRecord{
		Fingerprint: s.vault.Fingerprint,
		Salt:        s.vault.Salt,
		Payload:     &payload,
	}
	if err := save(vault); err != nil {
		s.logger.Err(err).
			Str("func", fnName).
			Str("identity_id", s.identityID).
			Msg("failed to persist private tasks")
		return fmt.Errorf("save vault: %w", err)
	}

	s.mu.Lock()
	s.vault = vault
	s.tasks = next
	s.mu.Unlock()

	return nil
}

// readVault returns the plaintext private tasks of vault. For an encrypted
// vault it also returns the key that opened it; a legacy plaintext vault
// returns a nil key.
func (s *privacySession) readVault(password string, vault models.VaultRecord) ([]models.Task, []byte, error) {
	switch vault.Kind() {
	case models.VaultEncrypted:
		key := s.keys.DeriveKey(password, vault.Salt)
		tasks, err := s.keys.DecryptTasks(key, *vault.Payload)
		if err != nil {
			memguard.WipeBytes(key)
			if errors.Is(err, crypto.ErrIntegrity) {
				return nil, nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
			}
			return nil, nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
		}
		return tasks, key, nil
	case models.VaultLegacyPlaintext:
		return models.CloneTasks(vault.LegacyTasks), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, ErrCorruptVault)
	}
}

// seal builds a complete encrypted vault for password with a fresh salt.
// The caller owns the returned key.
func (s *privacySession) seal(password string, tasks []models.Task) (models.VaultRecord, []byte, error) {
	salt, err := s.keys.GenerateSalt()
	if err != nil {
		return models.VaultRecord{}, nil, fmt.Errorf("generate salt: %w", err)
	}

	key := s.keys.DeriveKey(password, salt)
	payload, err := s.keys.EncryptTasks(key, models.CloneTasks(tasks))
	if err != nil {
		memguard.WipeBytes(key)
		return models.VaultRecord{}, nil, fmt.Errorf("encrypt private tasks: %w", err)
	}

	return models.VaultRecord{
		Fingerprint: s.keys.Fingerprint(password),
		Salt:        salt,
		Payload:     &payload,
	}, key, nil
}

func (s *privacySession) withKey(fn func(key []byte) error) error {
	if s.key == nil {
		return ErrLocked
	}
	buf, err := s.key.Open()
	if err != nil {
		return fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// lockLocked drops the key and the plaintext. s.mu must be held.
func (s *privacySession) lockLocked() bool {
	if s.state != models.StateUnlocked {
		return false
	}
	s.discardLocked()
	s.state = models.StateLocked
	s.timer.Stop()
	return true
}

// resetLocked forgets the password and every private task. s.mu must be
// held by the goroutine running the transition.
func (s *privacySession) resetLocked() {
	if s.state == models.StateUnlocked {
		s.notify = models.LockReset
	}
	s.discardLocked()
	s.vault = models.VaultRecord{}
	s.state = models.StateNoPassword
}

func (s *privacySession) discardLocked() {
	s.key = nil
	for i := range s.tasks {
		s.tasks[i] = models.Task{}
	}
	s.tasks = nil
}
