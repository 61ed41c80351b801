package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
)

// RelayResult reports what one relay pass did. Failed is non-zero only when
// the broker rejected the batch; those messages stay pending with their
// attempt counter bumped.
type RelayResult struct {
	Claimed   int
	Published int
	Failed    int
	Cause     error
}

// RelayOutboxCommandHandler claims pending outbox rows, hands them to the
// broker and records the outcome in the same transaction that holds the
// claim. A broker failure is not a handler error: the marks still commit and
// the cause is reported in RelayResult.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.ClaimBatch(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}
	if len(messages) == 0 {
		return RelayResult{}, nil
	}

	result := RelayResult{Claimed: len(messages)}

	if cause := h.publisher.Publish(ctx, messages...); cause != nil {
		for _, m := range messages {
			if err = outbox.MarkFailed(ctx, m.ID, cause); err != nil {
				return RelayResult{}, err
			}
		}
		result.Failed = len(messages)
		result.Cause = cause
	} else {
		ids := make([]int64, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		if err = outbox.MarkPublished(ctx, ids, h.clock.Now()); err != nil {
			return RelayResult{}, err
		}
		result.Published = len(messages)
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}

	return result, nil
}
