// internal/functions/send-payment-reminder/models.go
package sendpaymentreminder

import (
	"fmt"
	"time"
)

// ReminderRequest is the request body. Fields are not validated; missing
// values decode as empty strings.
type ReminderRequest struct {
	MemberID      string `json:"memberId"`
	MemberName    string `json:"memberName"`
	MemberEmail   string `json:"memberEmail"`
	PaymentStatus string `json:"paymentStatus"`
}

// PaymentStatus is a member's payment state as reported by the caller.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "Pending"
	StatusOverdue PaymentStatus = "Overdue"
	StatusInvalid PaymentStatus = "Invalid"
)

// EmailTemplate is a rendered subject and HTML body.
type EmailTemplate struct {
	Status  PaymentStatus
	Subject string
	HTML    string
}

// Email is what an EmailSender delivers.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NotificationType is the type column of every record this function writes.
const NotificationType = "payment_reminder"

// NotificationRecord is one row of the notifications table.
type NotificationRecord struct {
	MemberID  string    `json:"member_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationRecord builds the audit row for a dispatched reminder.
func NewNotificationRecord(req *ReminderRequest, now time.Time) NotificationRecord {
	return NotificationRecord{
		MemberID:  req.MemberID,
		Type:      NotificationType,
		Message:   fmt.Sprintf("Payment reminder sent to %s for %s status", req.MemberEmail, req.PaymentStatus),
		CreatedAt: now.UTC(),
	}
}

// timestampLayout is ISO-8601 in UTC with millisecond precision, e.g.
// 2024-05-01T09:30:00.000Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t the way created_at is stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// SuccessResponse is the body of a successful request.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Output describes a completed reminder.
type Output struct {
	Template     PaymentStatus      `json:"template"`
	Subject      string             `json:"subject"`
	Notification NotificationRecord `json:"notification"`
}
