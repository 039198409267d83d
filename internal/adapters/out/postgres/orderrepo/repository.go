package orderrepo

import (
	"context"
	"errors"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/ddd"
	"bidding/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate ddd.Aggregate)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add order", err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update overwrites every mutable column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.get(ctx, id, nil)
}

// GetForUpdate reads the order under an exclusive row lock held until the
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.get(ctx, id, &clause.Locking{Strength: "UPDATE"})
}

// GetForShare reads the order under a shared row lock: concurrent quote
// submissions proceed together while selection and cancellation wait.
func (r *GormOrderRepository) GetForShare(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.get(ctx, id, &clause.Locking{Strength: "SHARE"})
}

func (r *GormOrderRepository) get(ctx context.Context, id order.ID, lock *clause.Locking) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock != nil {
		query = query.Clauses(*lock)
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Classify("get order", err)
	}

	return toDomain(dto)
}
