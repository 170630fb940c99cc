package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(msg Message) error
}

// SMTPConfig carries the connection settings for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(msg Message) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp sender not configured: host and from required")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	payload := []byte(
		"To: " + msg.To + "\r\n" +
			"Subject: " + msg.Subject + "\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			msg.Body + "\r\n",
	)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		host := s.cfg.Host
		if idx := strings.Index(host, ":"); idx > 0 {
			host = host[:idx]
		}
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// WebhookSender posts messages to an HTTP endpoint, for deployments that
// relay mail through a delivery service instead of raw SMTP.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookSender) Send(msg Message) error {
	body, err := json.Marshal(map[string]string{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	if err != nil {
		return err
	}

	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("email webhook returned %d", resp.StatusCode)
	}
	return nil
}

// ConsoleSender logs messages instead of delivering them. Default in
// development, where invitation links land in the server log.
type ConsoleSender struct {
	logger *slog.Logger
}

func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (c *ConsoleSender) Send(msg Message) error {
	c.logger.Info("email (console sender)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
