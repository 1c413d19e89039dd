// internal/functions/send-payment-reminder/templates.go
package sendpaymentreminder

import (
	"fmt"
	"html/template"
)

const (
	SubjectPending = "Payment Reminder - Your Payment is Due Soon"
	SubjectOverdue = "Urgent: Payment Overdue"
	SubjectInvalid = "Payment Status Update Required"
)

// Bodies take the HTML-escaped member name as their only argument.
const (
	pendingHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Payment Reminder</h2>
  <p>Dear %s,</p>
  <p>This is a friendly reminder that your payment is due soon. Please make your payment to maintain your active membership status.</p>
  <p>If you have already made the payment, please ignore this reminder.</p>
  <br>
  <p>Best regards,<br>East London Community</p>
</div>`

	overdueHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Payment Overdue Notice</h2>
  <p>Dear %s,</p>
  <p>This is to inform you that your payment is now overdue. Your membership status has been affected.</p>
  <p>Please make your payment as soon as possible to restore your active membership status.</p>
  <br>
  <p>Best regards,<br>East London Community</p>
</div>`

	invalidHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Payment Status Update</h2>
  <p>Dear %s,</p>
  <p>We noticed an issue with your recent payment. Please contact us to resolve this matter and update your payment status.</p>
  <br>
  <p>Best regards,<br>East London Community</p>
</div>`
)

// ResolveStatus maps a raw status onto a known one. Anything unrecognised,
// including the empty string, is treated as Pending.
func ResolveStatus(raw string) PaymentStatus {
	switch PaymentStatus(raw) {
	case StatusOverdue:
		return StatusOverdue
	case StatusInvalid:
		return StatusInvalid
	case StatusPending:
		return StatusPending
	default:
		return StatusPending
	}
}

// SelectTemplate renders the reminder for paymentStatus. It never fails.
func SelectTemplate(memberName, paymentStatus string) EmailTemplate {
	name := template.HTMLEscapeString(memberName)

	switch status := ResolveStatus(paymentStatus); status {
	case StatusOverdue:
		return EmailTemplate{Status: status, Subject: SubjectOverdue, HTML: fmt.Sprintf(overdueHTML, name)}
	case StatusInvalid:
		return EmailTemplate{Status: status, Subject: SubjectInvalid, HTML: fmt.Sprintf(invalidHTML, name)}
	default:
		return EmailTemplate{Status: StatusPending, Subject: SubjectPending, HTML: fmt.Sprintf(pendingHTML, name)}
	}
}
