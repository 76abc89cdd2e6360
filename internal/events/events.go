// Package events publishes guardrail change notifications.
package events

import (
	"context"
	"time"
)

type Type string

const (
	GuardrailCreated        Type = "guardrail.created"
	GuardrailUpdated        Type = "guardrail.updated"
	GuardrailDeleted        Type = "guardrail.deleted"
	GuardrailVersionCreated Type = "guardrail.version_created"
)

type Event struct {
	Type        Type      `json:"type"`
	GuardrailID string    `json:"guardrail_id"`
	Version     string    `json:"version,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload,omitempty"`
}

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks . Publisher

// Publisher delivers change events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no event sink is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
