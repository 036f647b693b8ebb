// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
)

// mapRelayError translates the relay's transport error into a service error.
// Rejections caused by the request or the credentials are not worth
// retrying; everything else is reported as the relay being unavailable.
func mapRelayError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrFeedbackRejected, msg)

	case errors.Is(err, adapter.ErrTooManyRequests),
		errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable):
		return fmt.Errorf("%w: %s", ErrRelayUnavailable, msg)
	}

	return fmt.Errorf("%w: %w", ErrRelayUnavailable, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
