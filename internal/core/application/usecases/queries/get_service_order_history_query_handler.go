package queries

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// HistoryEntryView is one ledger entry.
type HistoryEntryView struct {
	ID             kernel.UUID `json:"id"`
	ServiceOrderID kernel.UUID `json:"serviceOrderId"`
	Status         string      `json:"status"`
	Notes          *string     `json:"notes,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// GetServiceOrderHistoryQueryHandler returns entries oldest first. Entries
// with equal timestamps keep insertion order. A missing order is
// ObjectNotFound, an order without entries yields an empty slice. Entries are
// read through the ledger's repository; only the existence check is SQL.
type GetServiceOrderHistoryQueryHandler struct {
	db      *gorm.DB
	history ports.HistoryRepository
}

func NewGetServiceOrderHistoryQueryHandler(db *gorm.DB, history ports.HistoryRepository) GetServiceOrderHistoryQueryHandler {
	return GetServiceOrderHistoryQueryHandler{db: db, history: history}
}

func (h GetServiceOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetServiceOrderHistoryQuery,
) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	orderID := query.OrderID()

	var exists bool
	if err := h.db.WithContext(ctx).Raw(
		`SELECT EXISTS (SELECT 1 FROM service_orders WHERE id = ?)`, orderID.Bytes(),
	).Scan(&exists).Error; err != nil {
		return nil, errs.NewStorageFailureError("check service order", err)
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("serviceOrder", orderID.String())
	}

	entries, err := h.history.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	views := make([]HistoryEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, HistoryEntryView{
			ID:             entry.ID(),
			ServiceOrderID: entry.OrderID(),
			Status:         entry.Status().String(),
			Notes:          entry.Notes(),
			Timestamp:      entry.Timestamp(),
		})
	}
	return views, nil
}
