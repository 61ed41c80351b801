// Package outboxrepo stores domain events in the transactional outbox.
package outboxrepo

import (
	"time"

	"fieldservice/internal/core/ports"
)

// OutboxMessageDTO is the row of the outbox_messages table.
type OutboxMessageDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EventName   string    `gorm:"not null"`
	AggregateID string    `gorm:"not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	PublishedAt *time.Time
	Attempts    int `gorm:"not null"`
	LastError   *string
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func toPort(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		EventName:   dto.EventName,
		AggregateID: dto.AggregateID,
		Payload:     dto.Payload,
		CreatedAt:   dto.CreatedAt,
		Attempts:    dto.Attempts,
	}
}
