package queries

import (
	"context"
	"database/sql"

	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const getOrderOperation = "get order"

// GetOrderQueryHandler reads an order by its identifier.
//
// Example:
//
//	query, _ := NewGetOrderQuery(order.MustParseID("RX250526-001"))
//	o, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			warehouse,
			goods,
			delivery_address,
			status,
			selected_quote_id,
			selected_provider,
			selected_price,
			selected_at,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Rows()
	if err != nil {
		return OrderResponse{}, pgerr.Classify(getOrderOperation, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, pgerr.Classify(getOrderOperation, err)
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		resp             OrderResponse
		id               string
		ownerID          uuid.UUID
		status           int
		selectedQuoteID  uuid.NullUUID
		selectedProvider sql.NullString
		selectedPrice    decimal.NullDecimal
		selectedAt       sql.NullTime
	)
	if err = rows.Scan(
		&id,
		&ownerID,
		&resp.Details.Warehouse,
		&resp.Details.Goods,
		&resp.Details.DeliveryAddress,
		&status,
		&selectedQuoteID,
		&selectedProvider,
		&selectedPrice,
		&selectedAt,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		return OrderResponse{}, pgerr.Classify(getOrderOperation, err)
	}

	if resp.ID, err = order.ParseID(id); err != nil {
		return OrderResponse{}, err
	}
	if resp.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
		return OrderResponse{}, err
	}
	resp.Status = order.Status(status)

	if selectedQuoteID.Valid {
		sel := order.Selection{
			Provider: selectedProvider.String,
			At:       selectedAt.Time,
		}
		if sel.QuoteID, err = kernel.UUIDFromBytes(selectedQuoteID.UUID[:]); err != nil {
			return OrderResponse{}, err
		}
		if sel.Price, err = kernel.NewPrice(selectedPrice.Decimal); err != nil {
			return OrderResponse{}, err
		}
		resp.Selection = &sel
	}

	return resp, pgerr.Classify(getOrderOperation, rows.Err())
}
