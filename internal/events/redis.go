package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultStream = "guardrail-events"

type RedisConfig struct {
	Addr       string
	Password   string
	Stream     string
	MaxLen     int64
	MaxRetries int
}

// Connect dials Redis and pings it, backing off exponentially between attempts.
func Connect(ctx context.Context, cfg RedisConfig, logger *zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	attempts := max(cfg.MaxRetries, 1)
	var err error
	for i := range attempts {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("waiting before Redis retry")
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Str("addr", cfg.Addr).Int("attempts", i+1).Msg("Redis connected")
			return client, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Int("maxAttempts", attempts).Msg("Redis ping failed")
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", attempts, err)
}

// RedisPublisher appends each event to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zerolog.Logger
}

func NewRedisPublisher(client *redis.Client, stream string, maxLen int64, logger *zerolog.Logger) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logger,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	args, err := p.xaddArgs(event)
	if err != nil {
		return err
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.Debug().
		Str("stream", p.stream).
		Str("messageID", id).
		Str("event", string(event.Type)).
		Str("guardrailID", event.GuardrailID).
		Msg("published change event")
	return nil
}

func (p *RedisPublisher) xaddArgs(event Event) (*redis.XAddArgs, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event payload: %w", event.Type, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: []any{
			"type", string(event.Type),
			"guardrail_id", event.GuardrailID,
			"version", event.Version,
			"occurred_at", event.OccurredAt.UTC().Format(time.RFC3339Nano),
			"payload", string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return args, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
