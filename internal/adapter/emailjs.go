package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// guestEmail is sent as user_email when the author has no address.
const guestEmail = "Guest User"

type emailJSRelay struct {
	client *utils.HTTPClient
	cfg    config.ClientFeedback
	logger *logger.Logger
}

// emailJSRequest is the body of POST /api/v1.0/email/send.
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSRelay returns a [FeedbackRelay] that posts to the EmailJS REST
// API. It returns [ErrRelayNotConfigured] when cfg is disabled.
func NewEmailJSRelay(cfg config.ClientFeedback, logger *logger.Logger) (FeedbackRelay, error) {
	if !cfg.Enabled {
		return nil, ErrRelayNotConfigured
	}

	return &emailJSRelay{
		client: utils.NewJSONHTTPClient(cfg.RequestTimeout),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Send implements [FeedbackRelay].
func (e *emailJSRelay) Send(ctx context.Context, mail models.FeedbackMail) error {
	userEmail := mail.UserEmail
	if userEmail == "" {
		userEmail = guestEmail
	}

	body := emailJSRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.PublicKey,
		TemplateParams: map[string]string{
			"to_email":   e.cfg.Recipient,
			"subject":    mail.Subject,
			"message":    mail.Message,
			"user_email": userEmail,
			"timestamp":  mail.Timestamp.Format(time.RFC3339),
		},
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(e.cfg.Endpoint)
	if err != nil {
		e.logger.Err(err).
			Str("func", "emailJSRelay.Send").
			Msg("feedback relay request failed")
		return fmt.Errorf("send feedback request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		e.logger.Warn().
			Str("func", "emailJSRelay.Send").
			Int("status", resp.StatusCode()).
			Msg("feedback relay rejected message")
		return err
	}

	e.logger.Debug().
		Str("func", "emailJSRelay.Send").
		Msg("feedback relayed")

	return nil
}
