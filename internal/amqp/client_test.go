package amqp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"expensetracker/internal/core"
	"expensetracker/internal/tracker"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"amqp closed", amqp091.ErrClosed, true},
		{"wrapped amqp closed", fmt.Errorf("publish: %w", amqp091.ErrClosed), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"EOF error", errors.New("unexpected EOF"), true},
		{"broken pipe error", errors.New("write: broken pipe"), true},
		{"other error", errors.New("some other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestChangeMessageJSON(t *testing.T) {
	ev := tracker.ChangeEvent{Op: tracker.OpAdd, ID: 5, Summary: core.Summary{Count: 5, Total: 1004.5}}
	msg := NewChangeMessage(ev)
	if msg.Op != "add" || msg.ID != 5 || msg.Count != 5 || msg.Total != 1004.5 || msg.Timestamp.IsZero() {
		t.Fatalf("unexpected message %+v", msg)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := ChangeMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Op != msg.Op || back.ID != msg.ID || back.Total != msg.Total || !back.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("decoded message differs: %+v vs %+v", back, msg)
	}

	if _, err := ChangeMessageFromJSON([]byte("nope")); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

type fakeDelivery struct {
	data            []byte
	acked           bool
	nacked, requeue bool
}

func (f *fakeDelivery) Ack(bool) error { f.acked = true; return nil }
func (f *fakeDelivery) Nack(_ bool, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}
func (f *fakeDelivery) body() []byte { return f.data }

func TestProcessDelivery(t *testing.T) {
	ctx := context.Background()
	good := []byte(`{"op":"remove","id":2,"count":3,"total":750}`)

	t.Run("ack on success", func(t *testing.T) {
		d := &fakeDelivery{data: good}
		var got *ChangeMessage
		processDelivery(ctx, d, func(_ context.Context, m *ChangeMessage) error { got = m; return nil })
		if !d.acked || d.nacked {
			t.Fatalf("expected ack, got %+v", d)
		}
		if got == nil || got.Op != "remove" || got.ID != 2 {
			t.Fatalf("handler got %+v", got)
		}
	})

	t.Run("drop malformed", func(t *testing.T) {
		d := &fakeDelivery{data: []byte(`{`)}
		called := false
		processDelivery(ctx, d, func(context.Context, *ChangeMessage) error { called = true; return nil })
		if called || !d.nacked || d.requeue {
			t.Fatalf("expected nack without requeue, got %+v called=%v", d, called)
		}
	})

	t.Run("requeue on handler failure", func(t *testing.T) {
		d := &fakeDelivery{data: good}
		processDelivery(ctx, d, func(context.Context, *ChangeMessage) error { return errors.New("sheets down") })
		if !d.nacked || !d.requeue {
			t.Fatalf("expected nack with requeue, got %+v", d)
		}
	})
}

func TestCloseWithoutConnection(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Fatalf("Close should not fail without a connection: %v", err)
	}
	if err := c.ConsumeChanges(context.Background(), nil); !errors.Is(err, amqp091.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
