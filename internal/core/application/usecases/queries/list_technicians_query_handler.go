package queries

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TechnicianView is the public read model of a technician. The password hash
// never leaves the store.
type TechnicianView struct {
	ID        kernel.UUID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ListTechniciansQueryHandler struct {
	db *gorm.DB
}

func NewListTechniciansQueryHandler(db *gorm.DB) ListTechniciansQueryHandler {
	return ListTechniciansQueryHandler{db: db}
}

func (h ListTechniciansQueryHandler) Handle(
	ctx context.Context,
	query ListTechniciansQuery,
) ([]TechnicianView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			created_at
		FROM technicians
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, errs.NewStorageFailureError("list technicians", err)
	}
	defer rows.Close()

	technicians := make([]TechnicianView, 0)
	for rows.Next() {
		var id uuid.UUID
		var t TechnicianView
		if err = rows.Scan(&id, &t.Name, &t.Email, &t.CreatedAt); err != nil {
			return nil, errs.NewStorageFailureError("scan technician", err)
		}

		technicianID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		t.ID = technicianID
		technicians = append(technicians, t)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageFailureError("list technicians", err)
	}
	return technicians, nil
}
