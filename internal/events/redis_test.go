package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestRedisPublisher_Publish(t *testing.T) {
	client, mock := redismock.NewClientMock()
	publisher := NewRedisPublisher(client, "", 1000, testLogger())

	event := Event{
		Type:        GuardrailCreated,
		GuardrailID: "gr-123",
		Version:     "DRAFT",
		OccurredAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:     map[string]string{"guardrail_id": "gr-123"},
	}

	args, err := publisher.xaddArgs(event)
	if err != nil {
		t.Fatalf("xaddArgs() failed: %v", err)
	}
	if args.Stream != DefaultStream {
		t.Errorf("Expected default stream %q, got %q", DefaultStream, args.Stream)
	}
	if !args.Approx || args.MaxLen != 1000 {
		t.Errorf("Expected approximate trimming to 1000 entries, got %+v", args)
	}

	values := args.Values.([]any)
	want := []any{
		"type", "guardrail.created",
		"guardrail_id", "gr-123",
		"version", "DRAFT",
		"occurred_at", "2026-01-02T03:04:05Z",
		"payload", `{"guardrail_id":"gr-123"}`,
	}
	if len(values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("Value %d: expected %v, got %v", i, want[i], values[i])
		}
	}

	mock.ExpectXAdd(args).SetVal("1767323045000-0")

	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisPublisher_PublishError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	publisher := NewRedisPublisher(client, "audit", 0, testLogger())

	event := Event{Type: GuardrailDeleted, GuardrailID: "gr-9", OccurredAt: time.Unix(0, 0)}
	args, err := publisher.xaddArgs(event)
	if err != nil {
		t.Fatalf("xaddArgs() failed: %v", err)
	}
	if args.MaxLen != 0 || args.Approx {
		t.Errorf("Expected no trimming, got %+v", args)
	}

	mock.ExpectXAdd(args).SetErr(errors.New("connection refused"))

	err = publisher.Publish(context.Background(), event)
	if err == nil {
		t.Fatal("Expected error from Publish")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Event{}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
