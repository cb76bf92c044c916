// Package mailer sends the transactional email the tour workflow produces:
// registration credentials, password-reset links, guide assignment notices,
// and application approvals. One configured Mailer is built at startup and
// injected into handlers; sends are synchronous inside the owning request.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Email is one outbound message. TextBody is always set; HTMLBody is
// optional and sent as an alternative part when present.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single message. Handlers depend on this interface so
// tests can substitute a recording double.
type Sender interface {
	Send(Email) error
}

// Config holds the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // envelope/display address, e.g. tours@example.edu
	FromName string // display name, e.g. "University Tours"
}

// Mailer is the SMTP-backed Sender.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	name   string
	log    *zap.Logger
}

// New builds a Mailer from the given SMTP configuration.
func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("mailer: SMTP host and port are required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: from address is required")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		name:   cfg.FromName,
		log:    logger,
	}, nil
}

// Send delivers msg over SMTP. The dial happens per send; the underlying
// connection is closed when the send completes.
func (m *Mailer) Send(msg Email) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.name)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.log.Error("mail send failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return err
	}

	m.log.Info("mail sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
