package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// PublishOutboxResult counts the outcome of one relay batch.
type PublishOutboxResult struct {
	Published int
	Failed    int
}

// PublishOutboxCommandHandler relays pending messages to the broker.
// Delivery is at least once: a crash between publish and commit resends the
// batch, so consumers deduplicate on the message ID.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h *PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (PublishOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return PublishOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PublishOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	messages, err := repo.ClaimPending(ctx, cmd.BatchSize())
	if err != nil {
		return PublishOutboxResult{}, err
	}

	var result PublishOutboxResult
	for _, m := range messages {
		if pubErr := h.publisher.Publish(ctx, m); pubErr != nil {
			m.MarkFailed(pubErr)
			result.Failed++
		} else {
			m.MarkPublished(time.Now().UTC())
			result.Published++
		}

		if err = repo.Save(ctx, m); err != nil {
			return PublishOutboxResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return PublishOutboxResult{}, err
	}

	return result, nil
}
