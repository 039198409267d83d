// Package identityrepo answers ownership and provider-activity questions from
// the orders and providers tables.
package identityrepo

import (
	"context"
	"time"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProviderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProviderDTO) TableName() string {
	return "providers"
}

// GormIdentity implements ports.Identity using GORM.
type GormIdentity struct {
	db *gorm.DB
}

func NewGormIdentity(db *gorm.DB) *GormIdentity {
	return &GormIdentity{db: db}
}

func (i *GormIdentity) IsOwner(ctx context.Context, userID kernel.UUID, orderID order.ID) (bool, error) {
	var count int64
	err := i.db.WithContext(ctx).
		Table("orders").
		Where("id = ? AND owner_id = ?", orderID.String(), userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, pgerr.Classify("check order owner", err)
	}
	return count > 0, nil
}

func (i *GormIdentity) IsActiveProvider(ctx context.Context, providerID kernel.UUID) (bool, error) {
	var count int64
	err := i.db.WithContext(ctx).
		Model(&ProviderDTO{}).
		Where("id = ? AND active = ?", providerID.Bytes(), true).
		Count(&count).Error
	if err != nil {
		return false, pgerr.Classify("check provider", err)
	}
	return count > 0, nil
}

// RegisterProvider creates the provider or updates its name and activity.
func (i *GormIdentity) RegisterProvider(ctx context.Context, providerID kernel.UUID, name string, active bool) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("provider name")
	}

	dto := ProviderDTO{ID: providerID.Bytes(), Name: name, Active: active, CreatedAt: time.Now().UTC()}
	err := i.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "active"}),
		}).
		Create(&dto).Error
	return pgerr.Classify("register provider", err)
}
