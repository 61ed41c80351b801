// Package queries contains the read side. Handlers read straight from the
// database with SQL and return flat read models; they never load aggregates.
// The status ledger is the exception: it is read through
// ports.HistoryRepository, its only read path.
package queries

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Coordinates is a captured latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ServiceOrderView is the read model of a service order.
type ServiceOrderView struct {
	ID                  kernel.UUID  `json:"id"`
	OrderNumber         int          `json:"orderNumber"`
	ClientName          string       `json:"clientName"`
	Address             string       `json:"address"`
	ProblemDescription  string       `json:"problemDescription"`
	Priority            string       `json:"priority"`
	Period              string       `json:"period"`
	Notes               string       `json:"notes"`
	Status              string       `json:"status"`
	Position            int          `json:"position"`
	TechnicianID        *kernel.UUID `json:"technicianId,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	ExecutionStartTime  *time.Time   `json:"executionStartTime,omitempty"`
	ExecutionDuration   *int         `json:"executionDuration,omitempty"`
	StartTravelLocation *Coordinates `json:"startTravelLocation,omitempty"`
	ExecutionLocation   *Coordinates `json:"executionLocation,omitempty"`
}

const serviceOrderColumns = `
	id,
	order_number,
	client_name,
	address,
	problem_description,
	priority,
	period,
	notes,
	status,
	position,
	technician_id,
	created_at,
	execution_start_time,
	execution_duration,
	start_travel_latitude,
	start_travel_longitude,
	execution_latitude,
	execution_longitude`

type serviceOrderRow struct {
	ID                   uuid.UUID
	OrderNumber          int
	ClientName           string
	Address              string
	ProblemDescription   string
	Priority             string
	Period               string
	Notes                string
	Status               string
	Position             int
	TechnicianID         *uuid.UUID
	CreatedAt            time.Time
	ExecutionStartTime   *time.Time
	ExecutionDuration    *int
	StartTravelLatitude  *float64
	StartTravelLongitude *float64
	ExecutionLatitude    *float64
	ExecutionLongitude   *float64
}

func (r serviceOrderRow) toView() (ServiceOrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ServiceOrderView{}, err
	}

	view := ServiceOrderView{
		ID:                  id,
		OrderNumber:         r.OrderNumber,
		ClientName:          r.ClientName,
		Address:             r.Address,
		ProblemDescription:  r.ProblemDescription,
		Priority:            r.Priority,
		Period:              r.Period,
		Notes:               r.Notes,
		Status:              r.Status,
		Position:            r.Position,
		CreatedAt:           r.CreatedAt,
		ExecutionStartTime:  r.ExecutionStartTime,
		ExecutionDuration:   r.ExecutionDuration,
		StartTravelLocation: coordinates(r.StartTravelLatitude, r.StartTravelLongitude),
		ExecutionLocation:   coordinates(r.ExecutionLatitude, r.ExecutionLongitude),
	}

	if r.TechnicianID != nil {
		technicianID, techErr := kernel.UUIDFromBytes(r.TechnicianID[:])
		if techErr != nil {
			return ServiceOrderView{}, techErr
		}
		view.TechnicianID = &technicianID
	}

	return view, nil
}

func toViews(rows []serviceOrderRow) ([]ServiceOrderView, error) {
	views := make([]ServiceOrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func coordinates(latitude, longitude *float64) *Coordinates {
	if latitude == nil || longitude == nil {
		return nil
	}
	return &Coordinates{Latitude: *latitude, Longitude: *longitude}
}
