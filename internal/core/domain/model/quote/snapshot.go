package quote

import "time"

type Snapshot struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"orderId"`
	ProviderID        string    `json:"providerId"`
	ProviderName      string    `json:"providerName"`
	Price             string    `json:"price"`
	EstimatedDelivery string    `json:"estimatedDelivery"`
	Remarks           string    `json:"remarks,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (q *Quote) Snapshot() Snapshot {
	return Snapshot{
		ID:                q.id.String(),
		OrderID:           q.orderID.String(),
		ProviderID:        q.providerID.String(),
		ProviderName:      q.terms.ProviderName,
		Price:             q.terms.Price.String(),
		EstimatedDelivery: q.terms.EstimatedDelivery,
		Remarks:           q.terms.Remarks,
		Status:            q.status.String(),
		CreatedAt:         q.createdAt,
		UpdatedAt:         q.updatedAt,
	}
}
