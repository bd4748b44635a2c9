package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/config"
)

// SMTPAlertMailer mails operational alerts to the configured recipients.
type SMTPAlertMailer struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPAlertMailer(cfg config.EmailConfig) *SMTPAlertMailer {
	return &SMTPAlertMailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// NotifyNoAuthority reports that nobody active holds the authority slot.
func (s *SMTPAlertMailer) NotifyNoAuthority(ctx context.Context, slot string, cause error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.noAuthorityMessage(slot, cause, biztime.NowUTC()))
}

func (s *SMTPAlertMailer) noAuthorityMessage(slot string, cause error, at time.Time) *gomail.Message {
	subject := fmt.Sprintf("[CampusVoice] No active authority for %s", slot)
	detail := "unknown"
	if cause != nil {
		detail = cause.Error()
	}

	plainBody := fmt.Sprintf(`
Complaints routed to %s cannot be assigned because no active authority holds that position.

Cause: %s
Time:  %s

Appoint or reactivate an authority for this position. Affected submissions were rejected and can be retried by the students.
	`, slot, detail, biztime.FormatInBizTimezone(at, time.RFC3339))

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>No active authority for %s</h2>
			<p>Complaints routed to this position cannot be assigned.</p>
			<p><strong>Cause:</strong> %s<br><strong>Time:</strong> %s</p>
			<p>Appoint or reactivate an authority for this position.</p>
		</body>
		</html>
	`, slot, detail, biztime.FormatInBizTimezone(at, time.RFC3339))

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", s.config.AlertTo...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func (s *SMTPAlertMailer) send(m *gomail.Message) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
