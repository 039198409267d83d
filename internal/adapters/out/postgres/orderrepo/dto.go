// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row shape of the orders table. The selected_* columns are
// either all set (closed by selection) or all NULL.
type OrderDTO struct {
	ID               string              `gorm:"type:varchar(16);primaryKey"`
	OwnerID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Warehouse        string              `gorm:"type:text;not null"`
	Goods            string              `gorm:"type:text;not null"`
	DeliveryAddress  string              `gorm:"type:text;not null"`
	Status           int                 `gorm:"type:smallint;not null;index"`
	SelectedQuoteID  *uuid.UUID          `gorm:"type:uuid"`
	SelectedProvider *string             `gorm:"type:varchar(255)"`
	SelectedPrice    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	SelectedAt       *time.Time
	CreatedAt        time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()
	dto := OrderDTO{
		ID:              o.ID().String(),
		OwnerID:         o.OwnerID().Bytes(),
		Warehouse:       details.Warehouse,
		Goods:           details.Goods,
		DeliveryAddress: details.DeliveryAddress,
		Status:          int(o.Status()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if sel := o.Selection(); sel != nil {
		quoteID := sel.QuoteID.Bytes()
		provider := sel.Provider
		at := sel.At
		dto.SelectedQuoteID = &quoteID
		dto.SelectedProvider = &provider
		dto.SelectedPrice = decimal.NullDecimal{Decimal: sel.Price.Decimal(), Valid: true}
		dto.SelectedAt = &at
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.ParseID(dto.ID)
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var selection *order.Selection
	if dto.SelectedQuoteID != nil {
		selection, err = selectionToDomain(dto)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		ownerID,
		order.Details{
			Warehouse:       dto.Warehouse,
			Goods:           dto.Goods,
			DeliveryAddress: dto.DeliveryAddress,
		},
		order.Status(dto.Status),
		selection,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func selectionToDomain(dto OrderDTO) (*order.Selection, error) {
	quoteID, err := kernel.UUIDFromBytes(dto.SelectedQuoteID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.SelectedPrice.Decimal)
	if err != nil {
		return nil, err
	}

	sel := &order.Selection{QuoteID: quoteID, Price: price}
	if dto.SelectedProvider != nil {
		sel.Provider = *dto.SelectedProvider
	}
	if dto.SelectedAt != nil {
		sel.At = *dto.SelectedAt
	}
	return sel, nil
}
