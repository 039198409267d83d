package quoterepo

import (
	"context"
	"errors"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/ddd"
	"bidding/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate ddd.Aggregate)
}

func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save inserts the quote or, when the provider already quoted on the order,
// overwrites the stored terms. The stored row is read back so the caller
// sees the surviving id and createdAt, and events are tracked on it.
func (r *GormQuoteRepository) Save(ctx context.Context, aggregate *quote.Quote) (*quote.Quote, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider_name",
				"price",
				"estimated_delivery",
				"remarks",
				"updated_at",
			}),
		}).
		Create(&dto).Error
	if err != nil {
		return nil, pgerr.Classify("save quote", err)
	}

	stored, err := r.GetByOrderAndProvider(ctx, aggregate.OrderID(), aggregate.ProviderID())
	if err != nil {
		return nil, err
	}

	if stored.ID().IsEqual(aggregate.ID()) {
		r.tracker.TrackAggregate(aggregate)
		return stored, nil
	}

	// A concurrent submission by the same provider inserted the row first.
	// The row keeps its id, so the event is raised on the stored quote.
	if err = stored.Revise(aggregate.Terms(), aggregate.UpdatedAt()); err != nil {
		return nil, err
	}
	r.tracker.TrackAggregate(stored)
	return stored, nil
}

// Update persists the status of an existing quote.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&QuoteDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Classify("update quote", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("quote", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	return r.get(ctx, id, nil)
}

// GetForUpdate reads the quote under an exclusive row lock.
func (r *GormQuoteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	return r.get(ctx, id, &clause.Locking{Strength: "UPDATE"})
}

func (r *GormQuoteRepository) GetByOrderAndProvider(
	ctx context.Context,
	orderID order.ID,
	providerID kernel.UUID,
) (*quote.Quote, error) {
	if err := errors.Join(orderID.Validate(), providerID.Validate()); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND provider_id = ?", orderID.String(), providerID.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", orderID.String()+"/"+providerID.String())
		}
		return nil, pgerr.Classify("get quote by provider", err)
	}

	return toDomain(dto)
}

// GetAllActiveByOrder locks and returns the active quotes of an order in
// submission order.
func (r *GormQuoteRepository) GetAllActiveByOrder(ctx context.Context, orderID order.ID) ([]*quote.Quote, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []QuoteDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND status = ?", orderID.String(), int(quote.Active)).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("get active quotes", err)
	}

	return toDomainList(dtos)
}

func (r *GormQuoteRepository) get(ctx context.Context, id kernel.UUID, lock *clause.Locking) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock != nil {
		query = query.Clauses(*lock)
	}

	var dto QuoteDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, pgerr.Classify("get quote", err)
	}

	return toDomain(dto)
}
