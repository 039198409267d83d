// Package quoterepo persists quote aggregates with GORM. A provider holds at
// most one quote per order, enforced by a unique index on
// (order_id, provider_id).
package quoterepo

import (
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           string          `gorm:"type:varchar(16);not null;uniqueIndex:ux_quotes_order_provider,priority:1"`
	ProviderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_quotes_order_provider,priority:2"`
	ProviderName      string          `gorm:"type:varchar(255);not null"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedDelivery string          `gorm:"type:text;not null"`
	Remarks           string          `gorm:"type:text;not null;default:''"`
	Status            int             `gorm:"type:smallint;not null;index"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (QuoteDTO) TableName() string {
	return "quotes"
}

func fromDomain(q *quote.Quote) QuoteDTO {
	terms := q.Terms()
	return QuoteDTO{
		ID:                q.ID().Bytes(),
		OrderID:           q.OrderID().String(),
		ProviderID:        q.ProviderID().Bytes(),
		ProviderName:      terms.ProviderName,
		Price:             terms.Price.Decimal(),
		EstimatedDelivery: terms.EstimatedDelivery,
		Remarks:           terms.Remarks,
		Status:            int(q.Status()),
		CreatedAt:         q.CreatedAt(),
		UpdatedAt:         q.UpdatedAt(),
	}
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := order.ParseID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.Price)
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(
		id,
		orderID,
		providerID,
		quote.Terms{
			ProviderName:      dto.ProviderName,
			Price:             price,
			EstimatedDelivery: dto.EstimatedDelivery,
			Remarks:           dto.Remarks,
		},
		quote.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func toDomainList(dtos []QuoteDTO) ([]*quote.Quote, error) {
	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
