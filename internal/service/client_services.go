package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// ClientServices holds the identity-independent services and opens a
// [Workspace] for whichever identity is current.
type ClientServices struct {
	IdentityService IdentityService
	FeedbackService FeedbackService

	records           store.RecordRepository
	keys              crypto.KeyChainService
	passwordValidator validators.Validator
	taskValidator     validators.Validator
	ids               utils.IDGenerator
	autoLock          time.Duration
	logger            *logger.Logger
}

// NewClientServices wires the services on top of storages. relay may be nil
// when feedback relaying is disabled.
func NewClientServices(
	storages *store.ClientStorages,
	relay adapter.FeedbackRelay,
	keys crypto.KeyChainService,
	autoLock time.Duration,
	log *logger.Logger,
) *ClientServices {
	taskValidator := validators.NewTaskValidator()

	return &ClientServices{
		IdentityService:   NewClientIdentityService(storages.Identities, storages.Records, log),
		FeedbackService:   NewClientFeedbackService(storages.Feedback, relay, taskValidator, log),
		records:           storages.Records,
		keys:              keys,
		passwordValidator: validators.NewPasswordValidator(),
		taskValidator:     taskValidator,
		ids:               utils.NewUUIDGenerator(),
		autoLock:          autoLock,
		logger:            log,
	}
}

// Workspace bundles the services bound to one identity record. It is
// replaced as a whole on identity switch.
type Workspace struct {
	Identity models.Identity
	Session  PrivacySession
	Tasks    TaskService
	Settings SettingsService
	Transfer TransferService
}

// OpenWorkspace loads the record of identity and builds its services. The
// privacy session starts locked.
func (c *ClientServices) OpenWorkspace(ctx context.Context, identity models.Identity) (*Workspace, error) {
	rec, err := c.records.GetRecord(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}

	session := NewPrivacySession(identity.ID, rec.Vault, c.records, c.keys, c.passwordValidator, c.autoLock, c.logger)
	settings := NewClientSettingsService(identity.ID, rec.Settings, c.records, session, c.taskValidator, c.autoLock, c.logger)
	session.SetAutoLockTimeout(settings.AutoLockTimeout())
	tasks := NewClientTaskService(identity.ID, rec.Tasks, c.records, session, c.taskValidator, c.ids, c.logger)

	c.logger.Info().
		Str("func", "ClientServices.OpenWorkspace").
		Str("identity_id", identity.ID).
		Str("vault", rec.Vault.Kind().String()).
		Str("state", session.State().String()).
		Msg("workspace opened")

	return &Workspace{
		Identity: identity,
		Session:  session,
		Tasks:    tasks,
		Settings: settings,
		Transfer: NewClientTransferService(tasks, session, settings),
	}, nil
}

// Close locks the workspace's session with reason and shuts it down.
func (w *Workspace) Close(reason models.LockReason) {
	w.Session.Lock(reason)
	w.Session.Close()
}
