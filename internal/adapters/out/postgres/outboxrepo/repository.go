package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fieldservice/internal/adapters/out/postgres/storage"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"

	"gorm.io/gorm"
)

const maxErrorLength = 1024

// GormOutboxRepository implements ports.OutboxRepository. ClaimBatch only
// makes sense inside a transaction; the row locks are released when it ends.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e.Payload())
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", e.EventName(), err)
		}
		dtos = append(dtos, OutboxMessageDTO{
			EventName:   e.EventName(),
			AggregateID: e.AggregateID().String(),
			Payload:     payload,
			CreatedAt:   e.OccurredAt(),
		})
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return storage.Wrap("append outbox", err)
	}
	return nil
}

func (r *GormOutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return []ports.OutboxMessage{}, nil
	}

	var dtos []OutboxMessageDTO
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, event_name, aggregate_id, payload, created_at, published_at, attempts, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	`, limit).Scan(&dtos).Error; err != nil {
		return nil, storage.Wrap("claim outbox batch", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"published_at": at, "last_error": nil}).Error; err != nil {
		return storage.Wrap("mark outbox published", err)
	}
	return nil
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id int64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	msg = truncateError(msg)

	if err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": msg,
		}).Error; err != nil {
		return storage.Wrap("mark outbox failed", err)
	}
	return nil
}

// truncateError keeps at most maxErrorLength bytes of msg without splitting a
// rune, and drops invalid UTF-8 that text columns would reject.
func truncateError(msg string) string {
	msg = strings.ToValidUTF8(msg, "")
	if len(msg) <= maxErrorLength {
		return msg
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
