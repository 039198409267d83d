package queries

import (
	"context"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListQuotesQueryHandler returns the quotes of an order ordered by price,
// then createdAt, then id. An unknown order is reported as not found; an
// order without quotes yields an empty slice.
type ListQuotesQueryHandler struct {
	db *gorm.DB
}

func NewListQuotesQueryHandler(db *gorm.DB) ListQuotesQueryHandler {
	return ListQuotesQueryHandler{db: db}
}

func (h ListQuotesQueryHandler) Handle(ctx context.Context, query ListQuotesQuery) ([]QuoteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return listQuotes(ctx, h.db, query.OrderID(), 0)
}

// LowestQuoteQueryHandler returns nil when the order has no quotes.
type LowestQuoteQueryHandler struct {
	db *gorm.DB
}

func NewLowestQuoteQueryHandler(db *gorm.DB) LowestQuoteQueryHandler {
	return LowestQuoteQueryHandler{db: db}
}

func (h LowestQuoteQueryHandler) Handle(ctx context.Context, query LowestQuoteQuery) (*QuoteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	quotes, err := listQuotes(ctx, h.db, query.OrderID(), 1)
	if err != nil || len(quotes) == 0 {
		return nil, err
	}
	return &quotes[0], nil
}

const listQuotesOperation = "list quotes"

func listQuotes(ctx context.Context, db *gorm.DB, orderID order.ID, limit int) ([]QuoteResponse, error) {
	db = db.WithContext(ctx)

	var exists int64
	if err := db.Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, orderID.String()).Scan(&exists).Error; err != nil {
		return nil, pgerr.Classify("find order", err)
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	sqlQuery := `
		SELECT
			id,
			provider_id,
			provider_name,
			price,
			estimated_delivery,
			remarks,
			status,
			created_at,
			updated_at
		FROM quotes
		WHERE order_id = ?
		ORDER BY price ASC, created_at ASC, id ASC`
	args := []any{orderID.String()}
	if limit > 0 {
		sqlQuery += `
		LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, pgerr.Classify(listQuotesOperation, err)
	}
	defer rows.Close()

	quotes := make([]QuoteResponse, 0)
	for rows.Next() {
		var (
			resp       QuoteResponse
			id         uuid.UUID
			providerID uuid.UUID
			price      decimal.Decimal
			status     int
		)
		if err = rows.Scan(
			&id,
			&providerID,
			&resp.ProviderName,
			&price,
			&resp.EstimatedDelivery,
			&resp.Remarks,
			&status,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		); err != nil {
			return nil, pgerr.Classify(listQuotesOperation, err)
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ProviderID, err = kernel.UUIDFromBytes(providerID[:]); err != nil {
			return nil, err
		}
		if resp.Price, err = kernel.NewPrice(price); err != nil {
			return nil, err
		}
		resp.OrderID = orderID
		resp.Status = quote.Status(status)
		quotes = append(quotes, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerr.Classify(listQuotesOperation, err)
	}

	return quotes, nil
}
