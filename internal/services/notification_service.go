package services

import (
	"bytes"
	"fmt"
	"text/template"

	"cinerent/pkg/mailer"
)

// NotificationKind selects the template and recipient-resolution rule for a
// notification.
type NotificationKind string

const (
	NotifyRentalConfirmation NotificationKind = "rental_confirmation"
	NotifyNewApplication     NotificationKind = "new_application"
	NotifyAdminMessage       NotificationKind = "admin_message"
	NotifyAdminReply         NotificationKind = "admin_reply"
)

// NotificationData carries the values rendered into a notification template.
// Recipient is only consulted for kinds addressed to a user; admin-bound kinds
// resolve to the operator address instead.
type NotificationData struct {
	Recipient  string
	Username   string
	MovieTitle string
	StartDate  string
	EndDate    string
	TotalPrice float64
	Content    string
}

// Notifier is the collaborator interface the workflows depend on.
type Notifier interface {
	Send(kind NotificationKind, data NotificationData) error
}

var notificationTemplates = map[NotificationKind]struct {
	subject string
	body    *template.Template
}{
	NotifyRentalConfirmation: {
		subject: "Rental confirmation",
		body: template.Must(template.New("rental").Parse(
			"Hello {{.Username}},\n\n" +
				"Your rental of \"{{.MovieTitle}}\" from {{.StartDate}} to {{.EndDate}} has been received.\n" +
				"Total price: ${{printf \"%.2f\" .TotalPrice}}.\n\n" +
				"We will let you know once staff have reviewed it.\n")),
	},
	NotifyNewApplication: {
		subject: "New movie application",
		body: template.Must(template.New("application").Parse(
			"{{.Username}} submitted a new movie application: \"{{.MovieTitle}}\".\n\n" +
				"Review it in the admin panel.\n")),
	},
	NotifyAdminMessage: {
		subject: "New message from a user",
		body: template.Must(template.New("message").Parse(
			"{{.Username}} wrote:\n\n{{.Content}}\n")),
	},
	NotifyAdminReply: {
		subject: "Reply from the rental team",
		body: template.Must(template.New("reply").Parse(
			"Hello,\n\n{{.Content}}\n\nThe rental team\n")),
	},
}

// NotificationService renders a fixed template per kind and hands the message
// to the mail transport.
type NotificationService struct {
	mailer     mailer.Mailer
	adminEmail string
}

// NewNotificationService creates a new NotificationService. adminEmail is the
// operator address admin-bound kinds resolve to.
func NewNotificationService(m mailer.Mailer, adminEmail string) *NotificationService {
	return &NotificationService{mailer: m, adminEmail: adminEmail}
}

// Send resolves the recipient for the kind, renders its template, and sends.
func (s *NotificationService) Send(kind NotificationKind, data NotificationData) error {
	tmpl, ok := notificationTemplates[kind]
	if !ok {
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	to := data.Recipient
	switch kind {
	case NotifyNewApplication, NotifyAdminMessage:
		to = s.adminEmail
	}
	if to == "" {
		return fmt.Errorf("notification %q: %w", kind, ErrNoRecipient)
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification %q: %w", kind, err)
	}

	if err := s.mailer.Send(to, tmpl.subject, body.String()); err != nil {
		return fmt.Errorf("failed to send notification %q: %w", kind, err)
	}
	return nil
}
