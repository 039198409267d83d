package http

import (
	"context"
	"net/http"
	"strings"

	"bidding/internal/core/application/usecases/commands"
	"bidding/internal/core/application/usecases/queries"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	HeaderUserID     = "X-User-ID"
	HeaderProviderID = "X-Provider-ID"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	CloseOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CloseOrderCommand) (commands.CloseOrderResult, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	SubmitQuoteHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitQuoteCommand) (*quote.Quote, error)
	}
	SelectQuoteHandler interface {
		Handle(ctx context.Context, cmd commands.SelectQuoteCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
	ListQuotesHandler interface {
		Handle(ctx context.Context, query queries.ListQuotesQuery) ([]queries.QuoteResponse, error)
	}
	LowestQuoteHandler interface {
		Handle(ctx context.Context, query queries.LowestQuoteQuery) (*queries.QuoteResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder CreateOrderHandler
	UpdateOrder UpdateOrderHandler
	CloseOrder  CloseOrderHandler
	CancelOrder CancelOrderHandler
	SubmitQuote SubmitQuoteHandler
	SelectQuote SelectQuoteHandler
	GetOrder    GetOrderHandler
	ListQuotes  ListQuotesHandler
	LowestQuote LowestQuoteHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger,
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/close", s.CloseOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PUT("/orders/:id/quotes", s.SubmitQuote)
	api.GET("/orders/:id/quotes", s.ListQuotes)
	api.GET("/orders/:id/quotes/lowest", s.LowestQuote)
	api.POST("/orders/:id/selection", s.SelectQuote)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	ownerID, err := headerUUID(c, HeaderUserID)
	if err != nil {
		return s.respondError(c, err)
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(ownerID, req.Warehouse, req.Goods, req.DeliveryAddress)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, o.Snapshot())
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderFromQuery(resp))
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	callerID, err := headerUUID(c, HeaderUserID)
	if err != nil {
		return s.respondError(c, err)
	}

	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewUpdateOrderCommand(callerID, orderID, order.Changes{
		Warehouse:       req.Warehouse,
		Goods:           req.Goods,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, o.Snapshot())
}

// CloseOrder handles POST /api/v1/orders/:id/close.
func (s *Server) CloseOrder(c echo.Context) error {
	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCloseOrderCommand(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.CloseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, closeOrderResponse{
		Order:         result.Order.Snapshot(),
		AlreadyClosed: result.AlreadyClosed,
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	callerID, err := headerUUID(c, HeaderUserID)
	if err != nil {
		return s.respondError(c, err)
	}

	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(callerID, orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, o.Snapshot())
}

// SubmitQuote handles PUT /api/v1/orders/:id/quotes. A provider holds at most
// one quote per order, so a repeated PUT replaces the terms.
func (s *Server) SubmitQuote(c echo.Context) error {
	providerID, err := headerUUID(c, HeaderProviderID)
	if err != nil {
		return s.respondError(c, err)
	}

	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req submitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	price, err := kernel.ParsePrice(req.Price)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewSubmitQuoteCommand(
		orderID,
		providerID,
		req.ProviderName,
		price,
		req.EstimatedDelivery,
		req.Remarks,
	)
	if err != nil {
		return s.respondError(c, err)
	}

	q, err := s.handlers.SubmitQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, q.Snapshot())
}

// ListQuotes handles GET /api/v1/orders/:id/quotes.
func (s *Server) ListQuotes(c echo.Context) error {
	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewListQuotesQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	list, err := s.handlers.ListQuotes.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]quote.Snapshot, len(list))
	for i, q := range list {
		response[i] = quoteFromQuery(q)
	}

	return c.JSON(http.StatusOK, response)
}

// LowestQuote handles GET /api/v1/orders/:id/quotes/lowest. It answers 204
// when the order has no quotes.
func (s *Server) LowestQuote(c echo.Context) error {
	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewLowestQuoteQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	lowest, err := s.handlers.LowestQuote.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	if lowest == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, quoteFromQuery(*lowest))
}

// SelectQuote handles POST /api/v1/orders/:id/selection.
func (s *Server) SelectQuote(c echo.Context) error {
	callerID, err := headerUUID(c, HeaderUserID)
	if err != nil {
		return s.respondError(c, err)
	}

	orderID, err := order.ParseID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req selectQuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	quoteID, err := kernel.UUIDFromString(req.QuoteID)
	if err != nil {
		return s.respondError(c, err)
	}

	price, err := kernel.ParsePrice(req.Price)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewSelectQuoteCommand(callerID, orderID, quoteID, req.ProviderName, price)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.SelectQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, o.Snapshot())
}

func headerUUID(c echo.Context, name string) (kernel.UUID, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(name))
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}

	return kernel.UUIDFromString(raw)
}
