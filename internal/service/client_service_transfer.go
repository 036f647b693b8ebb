package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/models"
)

type clientTransferService struct {
	tasks    TaskService
	session  PrivacySession
	settings SettingsService
}

func NewClientTransferService(tasks TaskService, session PrivacySession, settings SettingsService) TransferService {
	return &clientTransferService{tasks: tasks, session: session, settings: settings}
}

// Export never decrypts: private tasks are included only while they are
// resident.
func (t *clientTransferService) Export(ctx context.Context) ([]byte, error) {
	private, err := t.session.Tasks()
	if err != nil {
		if !errors.Is(err, ErrLocked) {
			return nil, err
		}
		private = []models.Task{}
	}

	doc := models.ExportData{
		Tasks:        t.tasks.Public(),
		PrivateTasks: private,
		Settings:     t.settings.Settings(),
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

func (t *clientTransferService) Import(ctx context.Context, data []byte, mode models.ImportMode) error {
	var doc *models.ExportData
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImportFile, err)
	}
	if doc == nil {
		return ErrInvalidImportFile
	}

	return t.tasks.Import(ctx, doc.Tasks, doc.PrivateTasks, mode)
}
