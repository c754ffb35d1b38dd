// Package mailer sends transactional email for account and moderation flows.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/infrastructure/config"
)

// Mailer delivers a single message to one or more recipients
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SMTPMailer sends over plain SMTP with optional auth
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer wraps the configured SMTP relay
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send delivers an HTML message. The From header comes from configuration.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, m.cfg.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Debug("mail sent",
		zap.Strings("to", to),
		zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and tests where no relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	m.logger.Info("mail suppressed, no SMTP relay configured",
		zap.Strings("to", to),
		zap.String("subject", subject),
		zap.Int("body_size", len(htmlBody)))
	return nil
}

// ForConfig returns an SMTP mailer when a host is configured, otherwise the
// logging fallback.
func ForConfig(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}
