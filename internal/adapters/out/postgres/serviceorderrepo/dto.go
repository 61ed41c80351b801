// Package serviceorderrepo persists service order aggregates with GORM.
package serviceorderrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"

	"github.com/google/uuid"
)

// ServiceOrderDTO is the row of the service_orders table.
type ServiceOrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        int        `gorm:"not null"`
	ClientName         string     `gorm:"not null"`
	Address            string     `gorm:"not null"`
	ProblemDescription string     `gorm:"not null"`
	Priority           string     `gorm:"not null"`
	Period             string     `gorm:"not null"`
	Notes              string     `gorm:"not null"`
	Status             string     `gorm:"not null"`
	Position           int        `gorm:"not null"`
	TechnicianID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time  `gorm:"autoCreateTime:false"`
	ExecutionStartTime *time.Time
	ExecutionDuration  *int
	StartTravel        CoordinatesDTO `gorm:"embedded;embeddedPrefix:start_travel_"`
	Execution          CoordinatesDTO `gorm:"embedded;embeddedPrefix:execution_"`
}

func (ServiceOrderDTO) TableName() string {
	return "service_orders"
}

// CoordinatesDTO is an optional latitude/longitude pair.
type CoordinatesDTO struct {
	Latitude  *float64
	Longitude *float64
}

func fromDomain(o *serviceorder.ServiceOrder) ServiceOrderDTO {
	d := o.Details()
	dto := ServiceOrderDTO{
		ID:                 o.ID().Bytes(),
		OrderNumber:        d.OrderNumber,
		ClientName:         d.ClientName,
		Address:            d.Address,
		ProblemDescription: d.ProblemDescription,
		Priority:           d.Priority,
		Period:             d.Period,
		Notes:              d.Notes,
		Status:             o.Status().String(),
		Position:           o.Position(),
		CreatedAt:          o.CreatedAt(),
		ExecutionStartTime: o.ExecutionStartTime(),
		ExecutionDuration:  o.ExecutionDuration(),
		StartTravel:        coordinatesFromDomain(o.StartTravelLocation()),
		Execution:          coordinatesFromDomain(o.ExecutionLocation()),
	}
	if id := o.TechnicianID(); id != nil {
		raw := id.Bytes()
		dto.TechnicianID = &raw
	}
	return dto
}

func toDomain(dto ServiceOrderDTO) (*serviceorder.ServiceOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var technicianID *kernel.UUID
	if dto.TechnicianID != nil {
		tID, techErr := kernel.UUIDFromBytes(dto.TechnicianID[:])
		if techErr != nil {
			return nil, techErr
		}
		technicianID = &tID
	}

	status, err := serviceorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	startTravel, err := dto.StartTravel.toDomain()
	if err != nil {
		return nil, err
	}
	execution, err := dto.Execution.toDomain()
	if err != nil {
		return nil, err
	}

	return serviceorder.RestoreServiceOrder(serviceorder.RestoreParams{
		ID: id,
		Details: serviceorder.Details{
			OrderNumber:        dto.OrderNumber,
			ClientName:         dto.ClientName,
			Address:            dto.Address,
			ProblemDescription: dto.ProblemDescription,
			Priority:           dto.Priority,
			Period:             dto.Period,
			Notes:              dto.Notes,
		},
		Status:              status,
		Position:            dto.Position,
		TechnicianID:        technicianID,
		CreatedAt:           dto.CreatedAt,
		ExecutionStartTime:  dto.ExecutionStartTime,
		ExecutionDuration:   dto.ExecutionDuration,
		StartTravelLocation: startTravel,
		ExecutionLocation:   execution,
	})
}

func coordinatesFromDomain(p *kernel.GeoPoint) CoordinatesDTO {
	if p == nil {
		return CoordinatesDTO{}
	}
	lat, lng := p.Latitude(), p.Longitude()
	return CoordinatesDTO{Latitude: &lat, Longitude: &lng}
}

func (c CoordinatesDTO) toDomain() (*kernel.GeoPoint, error) {
	if c.Latitude == nil || c.Longitude == nil {
		return nil, nil //nolint:nilnil // absent coordinates
	}
	p, err := kernel.NewGeoPoint(*c.Latitude, *c.Longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
