package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"njeyali/config"
)

// Mailer sends templated plain-text mail over SMTP. Templates are looked
// up by name; unknown template names are an error so a typo surfaces in
// logs instead of sending an empty mail.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewMailer() *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *Mailer) Send(ctx context.Context, to, template string, data map[string]string) error {
	subject, body, err := renderTemplate(template, data)
	if err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send %s mail to %s: %w", template, to, err)
	}
	return nil
}

func renderTemplate(template string, data map[string]string) (subject, body string, err error) {
	name := data["name"]
	ref := data["referenceNumber"]

	switch template {
	case "booking_confirmation":
		subject = fmt.Sprintf("Booking Confirmation - %s", ref)
		body = fmt.Sprintf(
			"Dear %s,\n\nWe have received your %s request. Our team will review it and get back to you within 24 hours.\n\nReference Number: %s\n\nPlease save your reference number for future correspondence.\n\nNjeyali Travel",
			name, data["serviceType"], ref)
	case "payment_confirmation":
		subject = fmt.Sprintf("Payment Received - %s", ref)
		body = fmt.Sprintf(
			"Dear %s,\n\nWe have received your payment of %s %s for booking %s (transaction %s). Payment status: %s.\n\nNjeyali Travel",
			name, data["currency"], data["amount"], ref, data["transactionId"], data["paymentStatus"])
	case "status_update":
		subject = fmt.Sprintf("Booking Update - %s", ref)
		body = fmt.Sprintf(
			"Dear %s,\n\nYour booking %s is now %s.\n\nNjeyali Travel",
			name, ref, data["status"])
	default:
		return "", "", fmt.Errorf("unknown mail template %q", template)
	}
	return subject, body, nil
}
