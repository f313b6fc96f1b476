package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/terraincognita07/cardiocheck/internal/config"
	"github.com/terraincognita07/cardiocheck/internal/logging"
)

const defaultInitialBackoff = 500 * time.Millisecond

// Notifier delivers the login confirmation. Callers treat failures as warnings.
type Notifier interface {
	NotifyLogin(ctx context.Context, email string) error
}

// Disabled is used when relay credentials are absent.
type Disabled struct{}

func (Disabled) NotifyLogin(context.Context, string) error {
	return ErrMailConfigMissing
}

// New returns an SMTP notifier, or Disabled when credentials are missing.
func New(cfg config.MailConfig) Notifier {
	if !cfg.Configured() {
		slog.Warn("login notifications disabled",
			"code", logging.MAIL,
			"reason", "MAIL_USERNAME or MAIL_PASSWORD is not set",
		)
		return Disabled{}
	}
	return NewSMTPNotifier(cfg)
}

type SMTPNotifier struct {
	cfg            config.MailConfig
	dialer         *net.Dialer
	tlsConfig      *tls.Config
	initialBackoff time.Duration
	now            func() time.Time
}

func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:            cfg,
		dialer:         &net.Dialer{},
		tlsConfig:      &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		initialBackoff: defaultInitialBackoff,
		now:            time.Now,
	}
}

// NotifyLogin sends the login confirmation to email. Transport failures are
// retried with exponential backoff; configuration and credential failures are not.
// All attempts and backoff waits share one budget of cfg.Timeout.
func (n *SMTPNotifier) NotifyLogin(ctx context.Context, email string) error {
	if !n.cfg.Configured() {
		return ErrMailConfigMissing
	}
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	recipient, err := mail.ParseAddress(email)
	if err != nil {
		return &mailError{kind: ErrMailTransport, cause: fmt.Errorf("invalid recipient: %w", err)}
	}

	message, err := composeLogin(n.cfg.Username, recipient.Address, n.now())
	if err != nil {
		return &mailError{kind: ErrMailTransport, cause: err}
	}

	backoff := n.initialBackoff
	for attempt := 0; ; attempt++ {
		err = classify(n.send(ctx, recipient.Address, message))
		if err == nil {
			slog.Info("login notification sent", "code", logging.MAIL, "attempts", attempt+1)
			return nil
		}
		if !retryable(err) || attempt >= n.cfg.Retries {
			return err
		}
		if ctx.Err() != nil {
			return &mailError{kind: ErrMailTransport, cause: errors.Join(ctx.Err(), err)}
		}

		slog.Warn("login notification attempt failed",
			"code", logging.MAIL,
			"attempt", attempt+1,
			"retry_in", backoff,
			"error", err,
		)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &mailError{kind: ErrMailTransport, cause: errors.Join(ctx.Err(), err)}
		case <-timer.C:
		}
		backoff *= 2
	}
}

func (n *SMTPNotifier) send(ctx context.Context, recipient string, message []byte) error {
	conn, err := n.dialer.DialContext(ctx, "tcp", n.cfg.Address())
	if err != nil {
		return fmt.Errorf("dial %s: %w", n.cfg.Address(), err)
	}
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if startTLS, _ := client.Extension("STARTTLS"); startTLS {
		if err := client.StartTLS(n.tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	} else if n.cfg.RequireTLS {
		return errors.New("relay does not offer STARTTLS")
	}

	if err := client.Auth(smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)); err != nil {
		return err
	}
	if err := client.Mail(n.cfg.Username); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}
