// Package notify delivers the transactional notifications fired after state
// changes. Delivery is best-effort by contract: callers log failures and
// never let them undo a committed write.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/launchline/concierge/internal/domain"
)

// Mailer sends notifications over SMTP using go-mail.
type Mailer struct {
	client *mail.Client
	from   string
}

// NewMailer creates a Mailer for the given SMTP endpoint. Credentials are
// optional; when username is empty the connection is unauthenticated
// (e.g. a local relay or a test catcher like MailHog).
func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, from: from}, nil
}

// Send delivers a single plain-text message. The send is bounded by ctx, so
// a request-scoped timeout also bounds the SMTP round-trip.
func (m *Mailer) Send(ctx context.Context, msg domain.Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("set from %q: %w", m.from, err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("set to %q: %w", msg.To, err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail to %q: %w", msg.To, err)
	}
	return nil
}

// LogNotifier is the Notifier used when mail is disabled: it records the
// would-be notification and succeeds. Useful in development and tests.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger falls back to the slog
// default.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the message instead of delivering it.
func (n *LogNotifier) Send(ctx context.Context, msg domain.Message) error {
	n.logger.InfoContext(ctx, "notification (mail disabled)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
