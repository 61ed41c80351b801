// Package technicianrepo persists technicians with GORM.
package technicianrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"

	"github.com/google/uuid"
)

// TechnicianDTO is the row of the technicians table.
type TechnicianDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex:technicians_email_key"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

func (TechnicianDTO) TableName() string {
	return "technicians"
}

func fromDomain(t *technician.Technician) TechnicianDTO {
	return TechnicianDTO{
		ID:           t.ID().Bytes(),
		Name:         t.Name(),
		Email:        t.Email(),
		PasswordHash: t.PasswordHash(),
		CreatedAt:    t.CreatedAt(),
	}
}

func toDomain(dto TechnicianDTO) (*technician.Technician, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return technician.RestoreTechnician(id, dto.Name, dto.Email, dto.PasswordHash, dto.CreatedAt)
}
