package notify

import (
	"errors"
	"time"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

var ErrEmailNotConfigured = errors.New("smtp settings are incomplete")

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg config.Email
	log *zap.Logger
}

func NewEmailSender(cfg config.Email, log *zap.Logger) *EmailSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmailSender{cfg: cfg, log: log}
}

// Send delivers an email with HTML body and plain text fallback.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Ready() {
		return ErrEmailNotConfigured
	}

	m := buildMessage(s.cfg, msg)

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		s.log.Error("Failed to send email", zap.String("to", s.cfg.ToEmail), zap.String("subject", msg.Subject), zap.Error(err))
		return err
	}

	s.log.Info("Email sent", zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(cfg config.Email, msg *RenderedMessage) *gomail.Message {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}
