package domain

import "context"

// Message is a fully composed outbound notification. Template rendering
// happens upstream; the notifier only delivers.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers a notification to a recipient. Implementations must
// honor ctx cancellation. Callers treat delivery as best-effort: a send
// failure is logged and swallowed, never used to roll back a state change
// that already committed.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
