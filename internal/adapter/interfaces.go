// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transport of the client.
//
// The only remote collaborator is the feedback relay: [FeedbackRelay]
// decouples the feedback service from the e-mail provider. The package ships
// an EmailJS REST implementation ([NewEmailJSRelay]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of the
// provider (e.g. [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/feedback_relay_mock.go -package=mock

// FeedbackRelay delivers a feedback message to the maintainers.
type FeedbackRelay interface {
	// Send delivers mail. It returns a wrapped sentinel from this package
	// when the provider rejects the request.
	Send(ctx context.Context, mail models.FeedbackMail) error
}
