// Package notify implements the external side of the notification
// fan-out: formatting and delivering the email counterpart of in-app
// notifications over SMTP.
package notify

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/domain"
	"github.com/waypost-dev/waypost/internal/logger"
)

type Email struct {
	cfg  *config.Email
	auth smtp.Auth
}

func NewEmail(cfg *config.Email) *Email {
	return &Email{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPServer),
	}
}

// Send implements service.Channel.
func (e *Email) Send(recipient domain.User, subject, body string) error {
	msg := e.buildMessage(recipient.Email, subject, body)
	address := fmt.Sprintf("%s:%d", e.cfg.SMTPServer, e.cfg.SMTPPort)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if e.cfg.SMTPPort == 465 {
		tlsConfig := &tls.Config{ServerName: e.cfg.SMTPServer}
		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: e.timeout()}, "tcp", address, tlsConfig)
		if err != nil {
			logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
			return err
		}
		defer conn.Close()
		return e.deliver(conn, recipient.Email, msg, false)
	}

	conn, err := net.DialTimeout("tcp", address, e.timeout())
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()
	return e.deliver(conn, recipient.Email, msg, true)
}

func (e *Email) timeout() time.Duration {
	if e.cfg.Timeout == 0 {
		return 10 * time.Second
	}
	return time.Duration(e.cfg.Timeout) * time.Second
}

func (e *Email) deliver(conn net.Conn, recipient string, msg []byte, startTLS bool) error {
	client, err := smtp.NewClient(conn, e.cfg.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if startTLS {
		if err := client.StartTLS(&tls.Config{ServerName: e.cfg.SMTPServer}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if err := client.Auth(e.auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := client.Mail(e.cfg.Username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

func (e *Email) buildMessage(recipient, subject, body string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSenderName := mime.QEncoding.Encode("utf-8", e.cfg.SenderName)

	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), e.cfg.SMTPServer)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		msgID, date, recipient, encodedSenderName, e.cfg.Username, encodedSubject, body,
	)
}
