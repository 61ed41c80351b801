package serviceorderrepo

import (
	"context"
	"database/sql"
	"errors"

	"fieldservice/internal/adapters/out/postgres/storage"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormServiceOrderRepository implements ports.ServiceOrderRepository.
type GormServiceOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormServiceOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormServiceOrderRepository {
	return &GormServiceOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormServiceOrderRepository) Add(ctx context.Context, aggregate *serviceorder.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storage.Wrap("add service order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, so cleared optional fields become NULL.
func (r *GormServiceOrderRepository) Update(ctx context.Context, aggregate *serviceorder.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ServiceOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return storage.Wrap("update service order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("serviceOrder", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormServiceOrderRepository) Get(ctx context.Context, id kernel.UUID) (*serviceorder.ServiceOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormServiceOrderRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*serviceorder.ServiceOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormServiceOrderRepository) get(
	_ context.Context,
	db *gorm.DB,
	id kernel.UUID,
) (*serviceorder.ServiceOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceOrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("serviceOrder", id.String())
		}
		return nil, storage.Wrap("get service order", err)
	}

	return toDomain(dto)
}

func (r *GormServiceOrderRepository) GetMany(
	ctx context.Context,
	ids []kernel.UUID,
) ([]*serviceorder.ServiceOrder, error) {
	if len(ids) == 0 {
		return []*serviceorder.ServiceOrder{}, nil
	}

	var dtos []ServiceOrderDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", rawIDs(ids)).Find(&dtos).Error; err != nil {
		return nil, storage.Wrap("get service orders", err)
	}
	return toDomainList(dtos)
}

func (r *GormServiceOrderRepository) ListByTechnicians(
	ctx context.Context,
	technicianIDs []kernel.UUID,
) ([]*serviceorder.ServiceOrder, error) {
	if len(technicianIDs) == 0 {
		return []*serviceorder.ServiceOrder{}, nil
	}

	var dtos []ServiceOrderDTO
	if err := r.db.WithContext(ctx).
		Where("technician_id IN ?", rawIDs(technicianIDs)).
		Order("technician_id, position").
		Find(&dtos).Error; err != nil {
		return nil, storage.Wrap("list technician queues", err)
	}
	return toDomainList(dtos)
}

func (r *GormServiceOrderRepository) MaxPosition(ctx context.Context, technicianID *kernel.UUID) (*int, error) {
	q := r.db.WithContext(ctx).Model(&ServiceOrderDTO{})
	if technicianID == nil {
		q = q.Where("technician_id IS NULL")
	} else {
		q = q.Where("technician_id = ?", technicianID.Bytes())
	}

	var maxPosition sql.NullInt64
	if err := q.Select("MAX(position)").Scan(&maxPosition).Error; err != nil {
		return nil, storage.Wrap("max position", err)
	}
	if !maxPosition.Valid {
		return nil, nil //nolint:nilnil // empty queue
	}

	position := int(maxPosition.Int64)
	return &position, nil
}

// Delete removes the order; its history goes by cascade.
func (r *GormServiceOrderRepository) Delete(ctx context.Context, aggregate *serviceorder.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ServiceOrderDTO{}, "id = ?", aggregate.ID().Bytes())
	if result.Error != nil {
		return storage.Wrap("delete service order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("serviceOrder", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func toDomainList(dtos []ServiceOrderDTO) ([]*serviceorder.ServiceOrder, error) {
	orders := make([]*serviceorder.ServiceOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
