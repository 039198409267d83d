package order

import "time"

// Snapshot is a read-only copy of an order, safe to attach to errors and to
// serialize in responses.
type Snapshot struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"ownerId"`
	Warehouse        string     `json:"warehouse"`
	Goods            string     `json:"goods"`
	DeliveryAddress  string     `json:"deliveryAddress"`
	Status           string     `json:"status"`
	SelectedQuoteID  *string    `json:"selectedQuoteId,omitempty"`
	SelectedProvider *string    `json:"selectedProvider,omitempty"`
	SelectedPrice    *string    `json:"selectedPrice,omitempty"`
	SelectedAt       *time.Time `json:"selectedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:              o.id.String(),
		OwnerID:         o.ownerID.String(),
		Warehouse:       o.details.Warehouse,
		Goods:           o.details.Goods,
		DeliveryAddress: o.details.DeliveryAddress,
		Status:          o.status.String(),
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
	}
	if sel := o.selection; sel != nil {
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
