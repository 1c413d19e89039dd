// internal/functions/send-payment-reminder/service.go
package sendpaymentreminder

import (
	"context"
	"time"

	"payment-reminder/internal/common/errors"
	"payment-reminder/internal/common/logger"
	"payment-reminder/internal/common/metrics"
)

type ServiceDependencies struct {
	Sender EmailSender
	Store  NotificationStore
	Logger logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service runs one reminder: select template, send, then record.
type Service struct {
	sender EmailSender
	store  NotificationStore
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		sender: deps.Sender,
		store:  deps.Store,
		logger: log.WithFields(map[string]interface{}{"function": FunctionName}),
		now:    now,
	}
}

// Execute sends the reminder and, only if the provider accepted it, writes
// exactly one notification record. Nothing is retried.
func (s *Service) Execute(ctx context.Context, req *ReminderRequest) (*Output, error) {
	tmpl := SelectTemplate(req.MemberName, req.PaymentStatus)

	s.logger.Info("Executing payment reminder", map[string]interface{}{
		"memberId":      req.MemberID,
		"paymentStatus": req.PaymentStatus,
		"template":      string(tmpl.Status),
	})
	s.logger.Debug("reminder recipient", map[string]interface{}{
		"memberEmail": req.MemberEmail,
	})

	email := &Email{
		To:      req.MemberEmail,
		Subject: tmpl.Subject,
		HTML:    tmpl.HTML,
	}
	if err := s.sender.Send(ctx, email); err != nil {
		return nil, asEmailSendError(err).WithMetadata("memberId", req.MemberID)
	}
	metrics.RemindersEmailsSent.WithLabelValues(string(tmpl.Status)).Inc()
	s.logger.Debug("email dispatched", map[string]interface{}{"memberId": req.MemberID})

	record := NewNotificationRecord(req, s.now())
	if err := s.store.Insert(ctx, record); err != nil {
		return nil, asInsertError(err).WithMetadata("memberId", req.MemberID)
	}

	s.logger.Info("Payment reminder sent", map[string]interface{}{
		"memberId": req.MemberID,
		"subject":  tmpl.Subject,
	})

	return &Output{
		Template:     tmpl.Status,
		Subject:      tmpl.Subject,
		Notification: record,
	}, nil
}

// asEmailSendError makes every sender failure report "Failed to send email".
func asEmailSendError(err error) *errors.StandardError {
	if errors.IsCode(err, errors.ErrCodeEmailSendFailed) {
		return errors.Normalize(err)
	}
	return errors.NewEmailSendFailedErrorFrom(err)
}

func asInsertError(err error) *errors.StandardError {
	if errors.IsCode(err, errors.ErrCodeNotificationInsertFailed) {
		return errors.Normalize(err)
	}
	return errors.NewNotificationInsertFailedError(err)
}
