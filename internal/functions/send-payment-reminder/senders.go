// internal/functions/send-payment-reminder/senders.go
package sendpaymentreminder

import (
	"context"

	awsclient "payment-reminder/internal/common/aws"
	"payment-reminder/internal/common/emailservice"
	"payment-reminder/internal/common/errors"
	"payment-reminder/internal/common/logger"
)

// EmailSender delivers one email. Any returned error aborts the request
// before anything is persisted.
type EmailSender interface {
	Send(ctx context.Context, email *Email) error
}

// HTTPEmailSender sends through the transactional email HTTP API.
type HTTPEmailSender struct {
	client *emailservice.Client
	logger logger.Logger
}

func NewHTTPEmailSender(client *emailservice.Client, log logger.Logger) *HTTPEmailSender {
	return &HTTPEmailSender{
		client: client,
		logger: log.WithFields(map[string]interface{}{"provider": "http"}),
	}
}

func (s *HTTPEmailSender) Send(ctx context.Context, email *Email) error {
	err := s.client.Send(ctx, &emailservice.Message{
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		s.logger.Warn("email service call failed", map[string]interface{}{
			"endpoint": s.client.Endpoint(),
			"error":    err,
		})
		return errors.NewEmailSendFailedErrorFrom(err).WithMetadata("provider", "http")
	}
	return nil
}

// SESEmailSender sends through Amazon SES.
type SESEmailSender struct {
	client *awsclient.SESClient
	logger logger.Logger
}

func NewSESEmailSender(client *awsclient.SESClient, log logger.Logger) *SESEmailSender {
	return &SESEmailSender{
		client: client,
		logger: log.WithFields(map[string]interface{}{"provider": "ses"}),
	}
}

func (s *SESEmailSender) Send(ctx context.Context, email *Email) error {
	messageID, err := s.client.SendHTML(ctx, email.To, email.Subject, email.HTML)
	if err != nil {
		s.logger.Warn("SES send failed", map[string]interface{}{
			"error": err,
		})
		return errors.NewEmailSendFailedErrorFrom(err).WithMetadata("provider", "ses")
	}

	s.logger.Debug("SES accepted message", map[string]interface{}{
		"messageId": messageID,
	})
	return nil
}
