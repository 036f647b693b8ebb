// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI shows a workspace until the user quits and returns the workspace that
// is open at that point.
type UI interface {
	Run(ctx context.Context, ws *service.Workspace) (*service.Workspace, error)
}
