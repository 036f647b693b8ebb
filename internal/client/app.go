package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type App struct {
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, log *logger.Logger) *App {
	return &App{services: services, ui: ui, logger: log}
}

func (a *App) Run(ctx context.Context) error {
	identity, err := a.services.IdentityService.Current(ctx)
	if err != nil {
		return fmt.Errorf("resolve identity: %w", err)
	}

	ws, err := a.services.OpenWorkspace(ctx, identity)
	if err != nil {
		return fmt.Errorf("open workspace: %w", err)
	}

	a.logger.Info().
		Str("func", "App.Run").
		Str("identity_id", identity.ID).
		Msg("client started")

	last, err := a.ui.Run(ctx, ws)
	if last == nil {
		last = ws
	}
	last.Close(models.LockShutdown)

	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	a.logger.Info().
		Str("func", "App.Run").
		Str("identity_id", last.Identity.ID).
		Msg("client stopped")

	return nil
}
