package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/riservarotundo/order-service/internal/config"
)

// sendTimeout bounds the whole connect+send against a slow or unreachable
// mail server so a submission never blocks indefinitely on it.
const sendTimeout = 15 * time.Second

type Mailer struct {
	log  *slog.Logger
	host string
	port int
	user string
	pass string
	from string
}

func NewMailer(log *slog.Logger, cfg *config.Config) *Mailer {
	return &Mailer{
		log:  log,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.From(),
	}
}

// Notify sends the message over SMTP. When no host or no recipient is
// configured it does nothing and returns nil. Transmission errors are
// returned to the caller, which discards them after logging.
func (m *Mailer) Notify(ctx context.Context, recipient, subject, body string) error {
	if m.host == "" || recipient == "" {
		m.log.Debug("smtp not configured, skipping notification")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender %q: %w", m.from, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTimeout(sendTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.user != "" && m.pass != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.user),
			mail.WithPassword(m.pass),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
