package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// FileStorage is the JSON-file (or purely in-memory) backend. It implements
// [RecordRepository], [IdentityRepository] and [FeedbackRepository] on a
// single document that is rewritten atomically after every change.
type FileStorage struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	state filePersistedState
}

type fileRecord struct {
	Tasks    []models.Task      `json:"tasks"`
	Settings models.Settings    `json:"settings"`
	Vault    models.VaultRecord `json:"vault"`
}

type fileFeedback struct {
	IdentityID string          `json:"identity_id"`
	Feedback   models.Feedback `json:"feedback"`
}

type filePersistedState struct {
	NextFeedbackID int64                      `json:"next_feedback_id"`
	Records        map[string]fileRecord      `json:"records"`
	Current        *models.Identity           `json:"current_identity,omitempty"`
	Identities     map[string]models.Identity `json:"identities"`
	Feedback       []fileFeedback             `json:"feedback"`
}

// IsFileDSN reports whether dsn selects the JSON file backend.
func IsFileDSN(dsn string) bool {
	return strings.HasSuffix(strings.ToLower(dsn), ".json")
}

// NewFileStorage opens (or prepares to create) the document at path. An
// empty path or "memory" keeps state in process memory only.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		path = "memory"
	}

	s := &FileStorage{
		path:     path,
		inMemory: path == "memory" || path == MemoryDSN,
		state:    emptyFileState(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func emptyFileState() filePersistedState {
	return filePersistedState{
		NextFeedbackID: 1,
		Records:        make(map[string]fileRecord),
		Identities:     make(map[string]models.Identity),
	}
}

func (s *FileStorage) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	st := emptyFileState()
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode local storage file: %w", ErrCorruptRecord, err)
	}

	if st.NextFeedbackID <= 0 {
		st.NextFeedbackID = 1
	}
	if st.Records == nil {
		st.Records = make(map[string]fileRecord)
	}
	if st.Identities == nil {
		st.Identities = make(map[string]models.Identity)
	}

	s.state = st
	return nil
}

// persist writes the whole document to a temporary file and renames it over
// the previous one, so readers never observe a half-written record.
func (s *FileStorage) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod local storage file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close local storage file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

// update applies fn to a copy of the state and commits it only if persisting
// succeeds.
func (s *FileStorage) update(fn func(st *filePersistedState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := cloneFileState(prev)
	if err := fn(&next); err != nil {
		return err
	}

	s.state = next
	if err := s.persist(); err != nil {
		s.state = prev
		return err
	}
	return nil
}

func (s *FileStorage) GetRecord(ctx context.Context, identityID string) (models.UserRecord, error) {
	if identityID == "" {
		return models.UserRecord{}, ErrEmptyIdentityID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fr, ok := s.state.Records[identityID]
	if !ok {
		return models.NewUserRecord(identityID), nil
	}

	rec := models.UserRecord{
		IdentityID: identityID,
		Tasks:      models.CloneTasks(fr.Tasks),
		Settings:   fr.Settings,
		Vault:      cloneVault(fr.Vault),
	}
	if rec.Settings.Theme == "" {
		rec.Settings.Theme = models.ThemeLight
	}
	return rec, nil
}

func (s *FileStorage) SaveTasks(ctx context.Context, identityID string, tasks []models.Task) error {
	return s.updateRecord(identityID, func(fr *fileRecord) {
		fr.Tasks = models.CloneTasks(tasks)
	})
}

func (s *FileStorage) SaveSettings(ctx context.Context, identityID string, settings models.Settings) error {
	return s.updateRecord(identityID, func(fr *fileRecord) {
		fr.Settings = settings
	})
}

func (s *FileStorage) SaveVault(ctx context.Context, identityID string, vault models.VaultRecord) error {
	return s.updateRecord(identityID, func(fr *fileRecord) {
		fr.Vault = cloneVault(vault)
	})
}

func (s *FileStorage) SaveTasksAndVault(ctx context.Context, identityID string, tasks []models.Task, vault models.VaultRecord) error {
	return s.updateRecord(identityID, func(fr *fileRecord) {
		fr.Tasks = models.CloneTasks(tasks)
		fr.Vault = cloneVault(vault)
	})
}

func (s *FileStorage) SaveRecord(ctx context.Context, record models.UserRecord) error {
	return s.updateRecord(record.IdentityID, func(fr *fileRecord) {
		fr.Tasks = models.CloneTasks(record.Tasks)
		fr.Settings = record.Settings
		fr.Vault = cloneVault(record.Vault)
	})
}

func (s *FileStorage) updateRecord(identityID string, fn func(fr *fileRecord)) error {
	if identityID == "" {
		return ErrEmptyIdentityID
	}

	return s.update(func(st *filePersistedState) error {
		fr, ok := st.Records[identityID]
		if !ok {
			fr = fileRecord{Tasks: []models.Task{}, Settings: models.DefaultSettings()}
		}
		fn(&fr)
		st.Records[identityID] = fr
		return nil
	})
}

func (s *FileStorage) GetCurrentIdentity(ctx context.Context) (models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Current == nil {
		return models.Identity{}, ErrNoCurrentIdentity
	}
	return *s.state.Current, nil
}

func (s *FileStorage) SetCurrentIdentity(ctx context.Context, identity models.Identity) error {
	if identity.ID == "" {
		return ErrEmptyIdentityID
	}

	return s.update(func(st *filePersistedState) error {
		current := identity
		st.Current = &current
		st.Identities[identity.ID] = identity
		return nil
	})
}

func (s *FileStorage) ClearCurrentIdentity(ctx context.Context) error {
	return s.update(func(st *filePersistedState) error {
		st.Current = nil
		return nil
	})
}

func (s *FileStorage) SaveFeedback(ctx context.Context, identityID string, fb models.Feedback) (models.Feedback, error) {
	err := s.update(func(st *filePersistedState) error {
		fb.ID = st.NextFeedbackID
		st.NextFeedbackID++
		st.Feedback = append(st.Feedback, fileFeedback{IdentityID: identityID, Feedback: fb})
		return nil
	})
	if err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

func (s *FileStorage) ListFeedback(ctx context.Context, identityID string) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Feedback, 0)
	for _, f := range s.state.Feedback {
		if f.IdentityID == identityID {
			items = append(items, f.Feedback)
		}
	}
	return items, nil
}

func (s *FileStorage) DeleteFeedback(ctx context.Context, identityID string, id int64) error {
	return s.update(func(st *filePersistedState) error {
		kept := st.Feedback[:0]
		for _, f := range st.Feedback {
			if f.IdentityID == identityID && f.Feedback.ID == id {
				continue
			}
			kept = append(kept, f)
		}
		st.Feedback = kept
		return nil
	})
}

func (s *FileStorage) ClearFeedback(ctx context.Context, identityID string) error {
	return s.update(func(st *filePersistedState) error {
		kept := st.Feedback[:0]
		for _, f := range st.Feedback {
			if f.IdentityID != identityID {
				kept = append(kept, f)
			}
		}
		st.Feedback = kept
		return nil
	})
}

// Close is a no-op; every change is already on disk.
func (s *FileStorage) Close() error {
	return nil
}

func cloneFileState(st filePersistedState) filePersistedState {
	out := filePersistedState{
		NextFeedbackID: st.NextFeedbackID,
		Records:        make(map[string]fileRecord, len(st.Records)),
		Identities:     make(map[string]models.Identity, len(st.Identities)),
		Feedback:       append([]fileFeedback(nil), st.Feedback...),
	}
	for k, v := range st.Records {
		out.Records[k] = v
	}
	for k, v := range st.Identities {
		out.Identities[k] = v
	}
	if st.Current != nil {
		current := *st.Current
		out.Current = &current
	}
	return out
}

func cloneVault(v models.VaultRecord) models.VaultRecord {
	out := models.VaultRecord{Fingerprint: v.Fingerprint}
	if len(v.Salt) > 0 {
		out.Salt = append([]byte(nil), v.Salt...)
	}
	if v.Payload != nil {
		out.Payload = &models.EncryptedPayload{
			Nonce:      append([]byte(nil), v.Payload.Nonce...),
			Ciphertext: append([]byte(nil), v.Payload.Ciphertext...),
		}
	}
	if len(v.LegacyTasks) > 0 {
		out.LegacyTasks = models.CloneTasks(v.LegacyTasks)
	}
	return out
}
