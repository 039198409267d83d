package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bidding/internal/core/application/usecases/commands"
	"bidding/internal/core/application/usecases/queries"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

type createOrderFunc func(context.Context, commands.CreateOrderCommand) (*order.Order, error)

func (f createOrderFunc) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	return f(ctx, cmd)
}

type closeOrderFunc func(context.Context, commands.CloseOrderCommand) (commands.CloseOrderResult, error)

func (f closeOrderFunc) Handle(ctx context.Context, cmd commands.CloseOrderCommand) (commands.CloseOrderResult, error) {
	return f(ctx, cmd)
}

type submitQuoteFunc func(context.Context, commands.SubmitQuoteCommand) (*quote.Quote, error)

func (f submitQuoteFunc) Handle(ctx context.Context, cmd commands.SubmitQuoteCommand) (*quote.Quote, error) {
	return f(ctx, cmd)
}

type selectQuoteFunc func(context.Context, commands.SelectQuoteCommand) (*order.Order, error)

func (f selectQuoteFunc) Handle(ctx context.Context, cmd commands.SelectQuoteCommand) (*order.Order, error) {
	return f(ctx, cmd)
}

type getOrderFunc func(context.Context, queries.GetOrderQuery) (queries.OrderResponse, error)

func (f getOrderFunc) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderResponse, error) {
	return f(ctx, q)
}

type listQuotesFunc func(context.Context, queries.ListQuotesQuery) ([]queries.QuoteResponse, error)

func (f listQuotesFunc) Handle(ctx context.Context, q queries.ListQuotesQuery) ([]queries.QuoteResponse, error) {
	return f(ctx, q)
}

type lowestQuoteFunc func(context.Context, queries.LowestQuoteQuery) (*queries.QuoteResponse, error)

func (f lowestQuoteFunc) Handle(ctx context.Context, q queries.LowestQuoteQuery) (*queries.QuoteResponse, error) {
	return f(ctx, q)
}

func newTestOrder(t *testing.T, owner kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.MustParseID("RX251103-001"), owner, order.Details{
		Warehouse:       "Shanghai WH-1",
		Goods:           "20 pallets of ceramics",
		DeliveryAddress: "Chengdu, Wuhou district",
	}, testNow)
	require.NoError(t, err)
	return o
}

func serve(t *testing.T, handlers Handlers, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewEcho(NewServer(handlers, zap.NewNop()), nil, zap.NewNop())

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := serve(t, Handlers{}, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateOrder_ReturnsCreatedOrder(t *testing.T) {
	owner := kernel.NewUUID()
	var got commands.CreateOrderCommand
	handlers := Handlers{
		CreateOrder: createOrderFunc(func(_ context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
			got = cmd
			return newTestOrder(t, cmd.OwnerID()), nil
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders",
		`{"warehouse":"Shanghai WH-1","goods":"20 pallets of ceramics","deliveryAddress":"Chengdu, Wuhou district"}`,
		map[string]string{HeaderUserID: owner.String()})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, owner, got.OwnerID())
	assert.Equal(t, "Shanghai WH-1", got.Details().Warehouse)

	var snap order.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "RX251103-001", snap.ID)
	assert.Equal(t, "Active", snap.Status)
	assert.Nil(t, snap.SelectedQuoteID)
}

func TestCreateOrder_MissingUserHeader(t *testing.T) {
	rec := serve(t, Handlers{}, http.MethodPost, "/api/v1/orders", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.InDelta(t, float64(http.StatusBadRequest), decodeError(t, rec)["code"], 0)
}

func TestCreateOrder_BlankFieldsRejected(t *testing.T) {
	rec := serve(t, Handlers{}, http.MethodPost, "/api/v1/orders",
		`{"warehouse":"  ","goods":"x","deliveryAddress":"y"}`,
		map[string]string{HeaderUserID: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_CapacityExceededIsUnavailable(t *testing.T) {
	handlers := Handlers{
		CreateOrder: createOrderFunc(func(context.Context, commands.CreateOrderCommand) (*order.Order, error) {
			return nil, errs.NewCapacityExceededError("order identifiers for 20251103", order.MaxSequence)
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders",
		`{"warehouse":"a","goods":"b","deliveryAddress":"c"}`,
		map[string]string{HeaderUserID: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetOrder_InvalidID(t *testing.T) {
	rec := serve(t, Handlers{}, http.MethodGet, "/api/v1/orders/ORDER-1", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	handlers := Handlers{
		GetOrder: getOrderFunc(func(_ context.Context, q queries.GetOrderQuery) (queries.OrderResponse, error) {
			return queries.OrderResponse{}, errs.NewObjectNotFoundError("order", q.OrderID())
		}),
	}

	rec := serve(t, handlers, http.MethodGet, "/api/v1/orders/RX251103-042", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_RendersSelection(t *testing.T) {
	quoteID := kernel.NewUUID()
	handlers := Handlers{
		GetOrder: getOrderFunc(func(_ context.Context, q queries.GetOrderQuery) (queries.OrderResponse, error) {
			return queries.OrderResponse{
				ID:      q.OrderID(),
				OwnerID: kernel.NewUUID(),
				Status:  order.Closed,
				Selection: &order.Selection{
					QuoteID:  quoteID,
					Provider: "Provider C",
					Price:    kernel.MustParsePrice("16.90"),
					At:       testNow,
				},
				CreatedAt: testNow,
				UpdatedAt: testNow,
			}, nil
		}),
	}

	rec := serve(t, handlers, http.MethodGet, "/api/v1/orders/RX251103-001", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap order.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "Closed", snap.Status)
	require.NotNil(t, snap.SelectedQuoteID)
	assert.Equal(t, quoteID.String(), *snap.SelectedQuoteID)
	require.NotNil(t, snap.SelectedPrice)
	assert.Equal(t, "16.90", *snap.SelectedPrice)
}

func TestCloseOrder_ReportsAlreadyClosed(t *testing.T) {
	handlers := Handlers{
		CloseOrder: closeOrderFunc(func(context.Context, commands.CloseOrderCommand) (commands.CloseOrderResult, error) {
			return commands.CloseOrderResult{Order: newTestOrder(t, kernel.NewUUID()), AlreadyClosed: true}, nil
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders/RX251103-001/close", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body closeOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.AlreadyClosed)
	assert.Equal(t, "RX251103-001", body.Order.ID)
}

func TestSubmitQuote_UsesProviderHeader(t *testing.T) {
	providerID := kernel.NewUUID()
	var got commands.SubmitQuoteCommand
	handlers := Handlers{
		SubmitQuote: submitQuoteFunc(func(_ context.Context, cmd commands.SubmitQuoteCommand) (*quote.Quote, error) {
			got = cmd
			return quote.NewQuote(kernel.NewUUID(), cmd.OrderID(), cmd.ProviderID(), cmd.Terms(), testNow)
		}),
	}

	rec := serve(t, handlers, http.MethodPut, "/api/v1/orders/RX251103-001/quotes",
		`{"providerName":"Provider A","price":"25.50","estimatedDelivery":"3 days"}`,
		map[string]string{HeaderProviderID: providerID.String()})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, providerID, got.ProviderID())
	assert.Equal(t, "25.50", got.Terms().Price.String())

	var snap quote.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "Provider A", snap.ProviderName)
	assert.Equal(t, "RX251103-001", snap.OrderID)
}

func TestSubmitQuote_InvalidPrice(t *testing.T) {
	rec := serve(t, Handlers{}, http.MethodPut, "/api/v1/orders/RX251103-001/quotes",
		`{"providerName":"Provider A","price":"cheap","estimatedDelivery":"3 days"}`,
		map[string]string{HeaderProviderID: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitQuote_ForbiddenProvider(t *testing.T) {
	handlers := Handlers{
		SubmitQuote: submitQuoteFunc(func(context.Context, commands.SubmitQuoteCommand) (*quote.Quote, error) {
			return nil, errs.NewForbiddenError("provider", "submit quote")
		}),
	}

	rec := serve(t, handlers, http.MethodPut, "/api/v1/orders/RX251103-001/quotes",
		`{"providerName":"Provider A","price":"25.50","estimatedDelivery":"3 days"}`,
		map[string]string{HeaderProviderID: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListQuotes_KeepsHandlerOrder(t *testing.T) {
	orderID := order.MustParseID("RX251103-001")
	resp := func(name, price string) queries.QuoteResponse {
		return queries.QuoteResponse{
			ID:           kernel.NewUUID(),
			OrderID:      orderID,
			ProviderID:   kernel.NewUUID(),
			ProviderName: name,
			Price:        kernel.MustParsePrice(price),
			Status:       quote.Active,
			CreatedAt:    testNow,
			UpdatedAt:    testNow,
		}
	}
	handlers := Handlers{
		ListQuotes: listQuotesFunc(func(context.Context, queries.ListQuotesQuery) ([]queries.QuoteResponse, error) {
			return []queries.QuoteResponse{resp("C", "16.90"), resp("B", "18.80"), resp("A", "25.50")}, nil
		}),
	}

	rec := serve(t, handlers, http.MethodGet, "/api/v1/orders/RX251103-001/quotes", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []quote.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"16.90", "18.80", "25.50"}, []string{list[0].Price, list[1].Price, list[2].Price})
}

func TestLowestQuote_NoContentWhenEmpty(t *testing.T) {
	handlers := Handlers{
		LowestQuote: lowestQuoteFunc(func(context.Context, queries.LowestQuoteQuery) (*queries.QuoteResponse, error) {
			return nil, nil
		}),
	}

	rec := serve(t, handlers, http.MethodGet, "/api/v1/orders/RX251103-001/quotes/lowest", "", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSelectQuote_InvalidStateCarriesCurrent(t *testing.T) {
	owner := kernel.NewUUID()
	current := newTestOrder(t, owner).Snapshot()
	current.Status = "Closed"
	handlers := Handlers{
		SelectQuote: selectQuoteFunc(func(context.Context, commands.SelectQuoteCommand) (*order.Order, error) {
			return nil, errs.NewInvalidStateErrorWithCurrent("order", current.ID, current.Status, "select quote", current)
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders/RX251103-001/selection",
		`{"quoteId":"`+kernel.NewUUID().String()+`","providerName":"Provider C","price":"16.90"}`,
		map[string]string{HeaderUserID: owner.String()})

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	cur, ok := body["current"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Closed", cur["status"])
}

func TestSelectQuote_PassesExpectations(t *testing.T) {
	owner := kernel.NewUUID()
	quoteID := kernel.NewUUID()
	var got commands.SelectQuoteCommand
	handlers := Handlers{
		SelectQuote: selectQuoteFunc(func(_ context.Context, cmd commands.SelectQuoteCommand) (*order.Order, error) {
			got = cmd
			return newTestOrder(t, owner), nil
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders/RX251103-001/selection",
		`{"quoteId":"`+quoteID.String()+`","providerName":"Provider C","price":"16.90"}`,
		map[string]string{HeaderUserID: owner.String()})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, quoteID, got.QuoteID())
	assert.Equal(t, "Provider C", got.ExpectedProvider())
	assert.True(t, kernel.MustParsePrice("16.90").IsEqual(got.ExpectedPrice()))
}

func TestSelectQuote_SubCentPriceRejected(t *testing.T) {
	called := false
	handlers := Handlers{
		SelectQuote: selectQuoteFunc(func(context.Context, commands.SelectQuoteCommand) (*order.Order, error) {
			called = true
			return nil, nil
		}),
	}

	rec := serve(t, handlers, http.MethodPost, "/api/v1/orders/RX251103-001/selection",
		`{"quoteId":"`+kernel.NewUUID().String()+`","providerName":"Provider C","price":"16.904"}`,
		map[string]string{HeaderUserID: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.NewValueIsRequiredError("goods"), http.StatusBadRequest},
		{"forbidden", errs.NewForbiddenError("user", "cancel order"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("quote", "q-1"), http.StatusNotFound},
		{"invalid state", errs.NewInvalidStateError("order", "RX251103-001", "Closed", "update"), http.StatusConflict},
		{"conflict", errs.NewConflictError("quote", "q-1", "price changed", nil), http.StatusConflict},
		{"capacity", errs.NewCapacityExceededError("ids", 999), http.StatusServiceUnavailable},
		{"transient", errs.NewTransientStoreError("commit", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"fatal", errs.NewFatalStoreError("commit", assert.AnError), http.StatusInternalServerError},
		{"other", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}
