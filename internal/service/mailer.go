package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"

	"swinglab/internal/config"
	"swinglab/internal/middleware"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return err
	}
	defer c.Quit()

	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := wc.Write(buildMessage(m.cfg.From, to, subject, body)); err != nil {
		wc.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	logger.Info("Email sent via SMTP", "to", to, "subject", subject)
	return nil
}

// buildMessage はプレーンテキストメールを組み立てます。
// 件名は日本語を含むため RFC 2047 でエンコードします。
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return &SmtpMailer{cfg: &cfg.SMTP}
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}
