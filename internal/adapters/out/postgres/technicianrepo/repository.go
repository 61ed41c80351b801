package technicianrepo

import (
	"context"
	"errors"

	"fieldservice/internal/adapters/out/postgres/storage"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTechnicianRepository implements ports.TechnicianRepository.
type GormTechnicianRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTechnicianRepository(db *gorm.DB, tracker aggregateTracker) *GormTechnicianRepository {
	return &GormTechnicianRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the technician. The unique email index reports a concurrent
// registration of the same address as a conflict.
func (r *GormTechnicianRepository) Add(ctx context.Context, aggregate *technician.Technician) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictStateErrorWithCause("email", err)
		}
		return storage.Wrap("add technician", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTechnicianRepository) Get(ctx context.Context, id kernel.UUID) (*technician.Technician, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the technician row. Writers into the technician's queue
// serialize on this lock.
func (r *GormTechnicianRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*technician.Technician, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTechnicianRepository) get(db *gorm.DB, id kernel.UUID) (*technician.Technician, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TechnicianDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("technician", id.String())
		}
		return nil, storage.Wrap("get technician", err)
	}

	return toDomain(dto)
}

func (r *GormTechnicianRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&TechnicianDTO{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, storage.Wrap("check technician email", err)
	}
	return count > 0, nil
}

// Delete removes the technician's history entries, orders and the technician
// itself. The foreign keys cascade the same way; the explicit statements keep
// the order independent of the schema.
func (r *GormTechnicianRepository) Delete(ctx context.Context, aggregate *technician.Technician) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()

	if err := db.Exec(`
		DELETE FROM status_history
		WHERE service_order_id IN (SELECT id FROM service_orders WHERE technician_id = ?)
	`, id).Error; err != nil {
		return storage.Wrap("delete technician history", err)
	}

	if err := db.Exec(`DELETE FROM service_orders WHERE technician_id = ?`, id).Error; err != nil {
		return storage.Wrap("delete technician orders", err)
	}

	result := db.Delete(&TechnicianDTO{}, "id = ?", id)
	if result.Error != nil {
		return storage.Wrap("delete technician", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("technician", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
