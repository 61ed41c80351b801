// Package historyrepo stores the append-only status ledger.
package historyrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"

	"github.com/google/uuid"
)

// HistoryEntryDTO is the row of the status_history table. Seq is assigned by
// the database and breaks timestamp ties.
type HistoryEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"->"`
	ServiceOrderID uuid.UUID `gorm:"type:uuid;not null"`
	Status         string    `gorm:"not null"`
	Notes          *string
	Timestamp      time.Time `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "status_history"
}

func fromDomain(e *serviceorder.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:             e.ID().Bytes(),
		ServiceOrderID: e.OrderID().Bytes(),
		Status:         e.Status().String(),
		Notes:          e.Notes(),
		Timestamp:      e.Timestamp(),
	}
}

func toDomain(dto HistoryEntryDTO) (*serviceorder.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.ServiceOrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := serviceorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return serviceorder.RestoreHistoryEntry(id, orderID, status, dto.Notes, dto.Timestamp)
}
