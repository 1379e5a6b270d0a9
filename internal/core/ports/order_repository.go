// Package ports defines the contracts between the marketplace core and its
// adapters: repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add inserts a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored version is the one it was
	// loaded at, i.e. aggregate.Version()-1. A mismatch returns an error
	// matching errs.ErrVersionIsInvalid and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an error matching errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderEventRepository is the append-only audit trail. Events are never
// updated or deleted.
type OrderEventRepository interface {
	Append(ctx context.Context, event *order.Event) error

	// ListByOrder returns the trail oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Event, error)
}
