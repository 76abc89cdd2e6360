package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

func readArgs(c *Consumer) *redis.XReadGroupArgs {
	return &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    defaultCount,
		Block:    c.block,
	}
}

func TestConsumer_Setup(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "", "ops", "host-1", testLogger())

	mock.ExpectXGroupCreateMkStream(DefaultStream, "ops", "0").SetErr(errors.New("BUSYGROUP Consumer Group name already exists"))

	if err := consumer.Setup(context.Background()); err != nil {
		t.Fatalf("Expected existing group to be accepted, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConsumer_Poll(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "guardrail-events", "ops", "host-1", testLogger())

	mock.ExpectXReadGroup(readArgs(consumer)).SetVal([]redis.XStream{{
		Stream: "guardrail-events",
		Messages: []redis.XMessage{
			{ID: "1-0", Values: map[string]interface{}{
				"type":         "guardrail.created",
				"guardrail_id": "gr-1",
				"version":      "DRAFT",
				"occurred_at":  "2026-01-02T03:04:05Z",
				"payload":      `{"name":"finance"}`,
			}},
			{ID: "2-0", Values: map[string]interface{}{"payload": "{}"}},
		},
	}})
	mock.ExpectXAck("guardrail-events", "ops", "1-0").SetVal(1)
	mock.ExpectXAck("guardrail-events", "ops", "2-0").SetVal(1)

	var got []Event
	acked, err := consumer.poll(context.Background(), func(_ context.Context, _ string, event Event) error {
		got = append(got, event)
		return nil
	})
	if err != nil {
		t.Fatalf("poll() failed: %v", err)
	}

	if acked != 2 {
		t.Errorf("Expected both messages acknowledged, got %d", acked)
	}
	if len(got) != 1 {
		t.Fatalf("Expected only the well-formed event to reach the handler, got %d", len(got))
	}
	if got[0].Type != GuardrailCreated || got[0].GuardrailID != "gr-1" {
		t.Errorf("Unexpected event: %+v", got[0])
	}
	if !got[0].OccurredAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Unexpected timestamp: %v", got[0].OccurredAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConsumer_PollHandlerFailureLeavesPending(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "guardrail-events", "ops", "host-1", testLogger())

	mock.ExpectXReadGroup(readArgs(consumer)).SetVal([]redis.XStream{{
		Stream: "guardrail-events",
		Messages: []redis.XMessage{{ID: "1-0", Values: map[string]interface{}{
			"type":         "guardrail.deleted",
			"guardrail_id": "gr-1",
		}}},
	}})

	acked, err := consumer.poll(context.Background(), func(context.Context, string, Event) error {
		return errors.New("sink down")
	})
	if err != nil {
		t.Fatalf("poll() failed: %v", err)
	}
	if acked != 0 {
		t.Errorf("Expected no ACK, got %d", acked)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func claimArgs(c *Consumer, start string) *redis.XAutoClaimArgs {
	return &redis.XAutoClaimArgs{
		Stream:   c.stream,
		Group:    c.group,
		MinIdle:  c.MinIdle,
		Start:    start,
		Count:    defaultCount,
		Consumer: c.consumer,
	}
}

func TestConsumer_ReclaimRedeliversPending(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "guardrail-events", "ops", "host-2", testLogger())

	mock.ExpectXAutoClaim(claimArgs(consumer, "0-0")).SetVal([]redis.XMessage{{ID: "1-0", Values: map[string]interface{}{
		"type":         "guardrail.deleted",
		"guardrail_id": "gr-1",
	}}}, "7-0")
	mock.ExpectXAck("guardrail-events", "ops", "1-0").SetVal(1)
	mock.ExpectXAutoClaim(claimArgs(consumer, "7-0")).SetVal(nil, "0-0")

	var ids []string
	acked, err := consumer.reclaim(context.Background(), func(_ context.Context, id string, _ Event) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		t.Fatalf("reclaim() failed: %v", err)
	}
	if acked != 1 || len(ids) != 1 || ids[0] != "1-0" {
		t.Errorf("Expected the pending message handled and acknowledged, got acked=%d ids=%v", acked, ids)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConsumer_ReclaimError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "guardrail-events", "ops", "host-2", testLogger())

	mock.ExpectXAutoClaim(claimArgs(consumer, "0-0")).SetErr(errors.New("NOGROUP"))

	if _, err := consumer.reclaim(context.Background(), nil); err == nil {
		t.Fatal("Expected the XAUTOCLAIM error to surface")
	}
}

func TestConsumer_PollTimeout(t *testing.T) {
	client, mock := redismock.NewClientMock()
	consumer := NewConsumer(client, "guardrail-events", "ops", "host-1", testLogger())

	mock.ExpectXReadGroup(readArgs(consumer)).RedisNil()

	acked, err := consumer.poll(context.Background(), nil)
	if err != nil || acked != 0 {
		t.Errorf("Expected an empty poll, got %d, %v", acked, err)
	}
}

func TestDecodeMessage_BadTimestamp(t *testing.T) {
	_, err := decodeMessage(redis.XMessage{ID: "1-0", Values: map[string]interface{}{
		"type":         "guardrail.updated",
		"guardrail_id": "gr-1",
		"occurred_at":  "yesterday",
	}})
	if err == nil {
		t.Fatal("Expected an error for a malformed timestamp")
	}
}
