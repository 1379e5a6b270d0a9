package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/kernel"
)

// ErrOpenDisputeExists is returned by DisputeRepository.Add when the order
// already has an open dispute.
var ErrOpenDisputeExists = dispute.ErrAlreadyOpen

// DisputeRepository persists disputes.
type DisputeRepository interface {
	Add(ctx context.Context, d *dispute.Dispute) error
	Update(ctx context.Context, d *dispute.Dispute) error
	Get(ctx context.Context, id kernel.UUID) (*dispute.Dispute, error)

	// FindOpenByOrder returns the open dispute of an order, or nil and
	// ErrNoOpenDispute.
	FindOpenByOrder(ctx context.Context, orderID kernel.UUID) (*dispute.Dispute, error)
}

var ErrNoOpenDispute = errors.New("order has no open dispute")
