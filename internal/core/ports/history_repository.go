package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
)

// HistoryRepository is the append-only status ledger. Entries are never
// updated; they disappear only with their order.
type HistoryRepository interface {
	// Record appends one entry.
	Record(ctx context.Context, entry *serviceorder.HistoryEntry) error

	// ListByOrder returns the entries of an order ordered by timestamp, ties
	// broken by insertion order. It does not check that the order exists.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*serviceorder.HistoryEntry, error)
}
