package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/launchline/concierge/internal/domain"
)

func TestNewMailer_ValidatesFromOnSend(t *testing.T) {
	m, err := NewMailer("localhost", 2525, "", "", "not-an-address")
	if err != nil {
		t.Fatalf("NewMailer: %v", err)
	}

	// The bad from address fails message construction before any dial.
	err = m.Send(context.Background(), domain.Message{To: "client@example.com", Subject: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error for invalid from address")
	}
}

func TestMailer_RejectsInvalidRecipient(t *testing.T) {
	m, err := NewMailer("localhost", 2525, "", "", "concierge@example.com")
	if err != nil {
		t.Fatalf("NewMailer: %v", err)
	}

	err = m.Send(context.Background(), domain.Message{To: "not an address", Subject: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error for invalid recipient")
	}
}

func TestLogNotifier_SendSucceedsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewLogNotifier(logger)
	err := n.Send(context.Background(), domain.Message{
		To:      "client@example.com",
		Subject: "Your strategy call is confirmed",
		Body:    "See you there.",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("client@example.com")) {
		t.Errorf("log output missing recipient: %s", buf.String())
	}
}

func TestLogNotifier_NilLoggerFallsBack(t *testing.T) {
	n := NewLogNotifier(nil)
	if err := n.Send(context.Background(), domain.Message{To: "a@b.c"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
