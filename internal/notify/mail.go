package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer emails the requester's contact address when an admin decides on a booking.
type Mailer struct {
	sender Sender
	from   string
	log    *zap.Logger
}

func NewMailer(cfg utils.EmailConfig, log *zap.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return NewMailerWithSender(dialer, cfg.From, log)
}

func NewMailerWithSender(sender Sender, from string, log *zap.Logger) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
		log:    log.With(zap.String("notifier", "mail")),
	}
}

// BookingCreated sends nothing; requesters only hear back once a decision is made.
func (m *Mailer) BookingCreated(context.Context, *entity.Booking, *entity.Venue) {}

func (m *Mailer) BookingDecided(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	if booking.ContactEmail == "" {
		return
	}
	if err := m.send(booking, venue); err != nil {
		m.log.Error("Failed to send decision email",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("to", booking.ContactEmail),
		)
		return
	}
	m.log.Info("Decision email sent",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)
}

func (m *Mailer) send(booking *entity.Booking, venue *entity.Venue) error {
	subject, body, err := renderDecision(booking, venue)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", booking.ContactEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

var decisionTemplate = template.Must(template.New("decision").Parse(`<p>Hello {{.ContactName}},</p>
{{if .Approved -}}
<p>Your booking request <strong>{{.EventTitle}}</strong> at {{.VenueName}} on {{.EventDate}} from {{.StartTime}} to {{.EndTime}} has been approved.</p>
{{- else -}}
<p>Your booking request <strong>{{.EventTitle}}</strong> at {{.VenueName}} on {{.EventDate}} from {{.StartTime}} to {{.EndTime}} has been rejected.</p>
{{- if .Reason}}
<p>Reason: {{.Reason}}</p>
{{- end}}
{{- end}}
`))

func renderDecision(booking *entity.Booking, venue *entity.Venue) (string, string, error) {
	data := struct {
		ContactName string
		EventTitle  string
		VenueName   string
		EventDate   string
		StartTime   string
		EndTime     string
		Approved    bool
		Reason      string
	}{
		ContactName: booking.ContactName,
		EventTitle:  booking.EventTitle,
		VenueName:   "the requested venue",
		EventDate:   booking.EventDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Approved:    booking.Status == entity.BookingStatusApproved,
	}
	if venue != nil {
		data.VenueName = venue.Name
	}
	if booking.RejectionReason != nil {
		data.Reason = *booking.RejectionReason
	}

	var buf bytes.Buffer
	if err := decisionTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render decision email: %w", err)
	}

	subject := "Booking rejected: " + booking.EventTitle
	if data.Approved {
		subject = "Booking approved: " + booking.EventTitle
	}
	return subject, buf.String(), nil
}
