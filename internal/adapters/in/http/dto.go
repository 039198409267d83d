package http

import (
	"bidding/internal/core/application/usecases/queries"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
)

type createOrderRequest struct {
	Warehouse       string `json:"warehouse"`
	Goods           string `json:"goods"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type updateOrderRequest struct {
	Warehouse       *string `json:"warehouse"`
	Goods           *string `json:"goods"`
	DeliveryAddress *string `json:"deliveryAddress"`
}

type submitQuoteRequest struct {
	ProviderName      string `json:"providerName"`
	Price             string `json:"price"`
	EstimatedDelivery string `json:"estimatedDelivery"`
	Remarks           string `json:"remarks"`
}

type selectQuoteRequest struct {
	QuoteID      string `json:"quoteId"`
	ProviderName string `json:"providerName"`
	Price        string `json:"price"`
}

type closeOrderResponse struct {
	Order         order.Snapshot `json:"order"`
	AlreadyClosed bool           `json:"alreadyClosed"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Current any    `json:"current,omitempty"`
}

func orderFromQuery(r queries.OrderResponse) order.Snapshot {
	s := order.Snapshot{
		ID:              r.ID.String(),
		OwnerID:         r.OwnerID.String(),
		Warehouse:       r.Details.Warehouse,
		Goods:           r.Details.Goods,
		DeliveryAddress: r.Details.DeliveryAddress,
		Status:          r.Status.String(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if sel := r.Selection; sel != nil {
		quoteID := sel.QuoteID.String()
		price := sel.Price.String()
		provider := sel.Provider
		at := sel.At
		s.SelectedQuoteID = &quoteID
		s.SelectedProvider = &provider
		s.SelectedPrice = &price
		s.SelectedAt = &at
	}
	return s
}

func quoteFromQuery(r queries.QuoteResponse) quote.Snapshot {
	return quote.Snapshot{
		ID:                r.ID.String(),
		OrderID:           r.OrderID.String(),
		ProviderID:        r.ProviderID.String(),
		ProviderName:      r.ProviderName,
		Price:             r.Price.String(),
		EstimatedDelivery: r.EstimatedDelivery,
		Remarks:           r.Remarks,
		Status:            r.Status.String(),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
