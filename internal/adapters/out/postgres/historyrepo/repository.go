package historyrepo

import (
	"context"

	"fieldservice/internal/adapters/out/postgres/storage"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"

	"gorm.io/gorm"
)

// GormHistoryRepository implements ports.HistoryRepository.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) Record(ctx context.Context, entry *serviceorder.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Omit("Seq").Create(&dto).Error; err != nil {
		return storage.Wrap("record history entry", err)
	}
	return nil
}

func (r *GormHistoryRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*serviceorder.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Where("service_order_id = ?", orderID.Bytes()).
		Order("timestamp, seq").
		Find(&dtos).Error; err != nil {
		return nil, storage.Wrap("list history", err)
	}

	entries := make([]*serviceorder.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
