package ports

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
)

// OutboxRepository stores integration messages next to the state change
// they describe.
type OutboxRepository interface {
	Add(ctx context.Context, m *outbox.Message) error

	// ClaimPending locks up to limit pending messages, oldest first, skipping
	// rows other relays already hold.
	ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Save writes back status, attempts and error of a relayed message.
	Save(ctx context.Context, m *outbox.Message) error
}

// EventPublisher delivers a message to the broker. Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, m *outbox.Message) error
}
