package queries

import (
	"context"

	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListServiceOrdersQueryHandler returns orders grouped by technician in queue
// order. Unassigned orders come last.
type ListServiceOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListServiceOrdersQueryHandler(db *gorm.DB) ListServiceOrdersQueryHandler {
	return ListServiceOrdersQueryHandler{db: db}
}

func (h ListServiceOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListServiceOrdersQuery,
) ([]ServiceOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []serviceOrderRow
	var err error
	if id := query.TechnicianID(); id != nil {
		err = h.db.WithContext(ctx).Raw(`
			SELECT `+serviceOrderColumns+`
			FROM service_orders
			WHERE technician_id = ?
			ORDER BY position, created_at
		`, id.Bytes()).Scan(&rows).Error
	} else {
		err = h.db.WithContext(ctx).Raw(`
			SELECT ` + serviceOrderColumns + `
			FROM service_orders
			ORDER BY technician_id NULLS LAST, position, created_at
		`).Scan(&rows).Error
	}
	if err != nil {
		return nil, errs.NewStorageFailureError("list service orders", err)
	}

	return toViews(rows)
}
