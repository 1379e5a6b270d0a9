// Package commands contains the write side of the marketplace: every use case
// that changes an order, its audit trail, its disputes or the outbox.
// Handlers validate the command, open a unit of work, defer the rollback and
// commit only when every step succeeded.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of work interfaces consumed by the handlers. Each handler asks only
// for the repositories it uses, which keeps the test doubles small.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderEventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	DisputeRepoFactory interface {
		DisputeRepository() ports.DisputeRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW covers order placement and status changes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderEventRepoFactory
		OutboxRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DisputeUoW covers the dispute flow, which also moves the order.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { return err }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... open the dispute, move the order, append the event
	//
	//   return uow.Commit(ctx)
	DisputeUoW interface {
		OrderUoW
		DisputeRepoFactory
	}

	DisputeUoWFactory interface {
		Create() DisputeUoW
	}

	// OutboxUoW covers the relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
