package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultBlock   = 2 * time.Second
	defaultCount   = 10
	defaultMinIdle = 30 * time.Second
)

// Handler receives each decoded event. Returning an error leaves the message pending; once
// it has been idle for MinIdle it is reclaimed and handed to the handler again.
type Handler func(ctx context.Context, messageID string, event Event) error

// Consumer reads change events from a stream as a member of a consumer group.
type Consumer struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	// StartID is where a newly created group begins: "0" replays history, "$" only sees new events.
	StartID string
	// MinIdle is how long a pending message waits before it is reclaimed.
	MinIdle time.Duration
	block   time.Duration
	logger  *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream, group, consumer string, logger *zerolog.Logger) *Consumer {
	if stream == "" {
		stream = DefaultStream
	}
	return &Consumer{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		StartID:  "0",
		MinIdle:  defaultMinIdle,
		block:    defaultBlock,
		logger:   logger,
	}
}

// Setup creates the stream and group when missing.
func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, c.StartID).Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.group, err)
	}
	return nil
}

// Start reads until ctx is done.
func (c *Consumer) Start(ctx context.Context, handle Handler) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.group).
		Str("consumer", c.consumer).
		Msg("Consumer started")

	var lastReclaim time.Time
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if time.Since(lastReclaim) >= c.MinIdle {
			lastReclaim = time.Now()
			if _, err := c.reclaim(ctx, handle); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error().Err(err).Msg("Failed to reclaim pending messages")
			}
		}

		if _, err := c.poll(ctx, handle); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("Failed to read from stream")
		}
	}
}

// poll reads one batch and returns how many messages were acknowledged.
func (c *Consumer) poll(ctx context.Context, handle Handler) (int, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    defaultCount,
		Block:    c.block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}

	acked := 0
	for _, s := range streams {
		acked += c.process(ctx, s.Messages, handle)
	}
	return acked, nil
}

// reclaim takes over messages that stayed pending longer than MinIdle, whichever group
// member read them first, and runs them through handle again.
func (c *Consumer) reclaim(ctx context.Context, handle Handler) (int, error) {
	acked := 0
	start := "0-0"
	for {
		msgs, next, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.stream,
			Group:    c.group,
			MinIdle:  c.MinIdle,
			Start:    start,
			Count:    defaultCount,
			Consumer: c.consumer,
		}).Result()
		if err != nil {
			return acked, err
		}

		if len(msgs) > 0 {
			c.logger.Info().Int("count", len(msgs)).Msg("Reclaimed pending messages")
		}
		acked += c.process(ctx, msgs, handle)

		if next == "" || next == "0-0" {
			return acked, nil
		}
		start = next
	}
}

func (c *Consumer) process(ctx context.Context, msgs []redis.XMessage, handle Handler) int {
	acked := 0
	for _, msg := range msgs {
		event, err := decodeMessage(msg)
		if err != nil {
			// a malformed entry would be redelivered forever
			c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode change event")
			if c.ack(ctx, msg.ID) {
				acked++
			}
			continue
		}

		if err := handle(ctx, msg.ID, event); err != nil {
			c.logger.Warn().Err(err).Str("id", msg.ID).Msg("Change event handler failed")
			continue
		}
		if c.ack(ctx, msg.ID) {
			acked++
		}
	}
	return acked
}

func (c *Consumer) ack(ctx context.Context, id string) bool {
	if err := c.client.XAck(ctx, c.stream, c.group, id).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("Failed to ACK message")
		return false
	}
	return true
}

func (c *Consumer) Close() error {
	return c.client.Close()
}

func decodeMessage(msg redis.XMessage) (Event, error) {
	field := func(name string) string {
		v, _ := msg.Values[name].(string)
		return v
	}

	event := Event{
		Type:        Type(field("type")),
		GuardrailID: field("guardrail_id"),
		Version:     field("version"),
	}
	if event.Type == "" || event.GuardrailID == "" {
		return Event{}, fmt.Errorf("message %s: missing type or guardrail_id", msg.ID)
	}

	if at := field("occurred_at"); at != "" {
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return Event{}, fmt.Errorf("message %s: bad occurred_at: %w", msg.ID, err)
		}
		event.OccurredAt = t
	}

	if payload := field("payload"); payload != "" && payload != "null" {
		if !json.Valid([]byte(payload)) {
			return Event{}, fmt.Errorf("message %s: payload is not JSON", msg.ID)
		}
		event.Payload = json.RawMessage(payload)
	}
	return event, nil
}
