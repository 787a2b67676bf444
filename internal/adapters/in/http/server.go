// Package http exposes the proxy-purchase operations as a JSON API.
// Handlers translate between wire payloads and application commands/queries;
// all business rules stay in the core.
package http

import (
	"net/http"
	"strconv"

	"proxybuy/internal/core/application/usecases/commands"
	"proxybuy/internal/core/application/usecases/queries"
	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/currency"
)

const defaultPageSize = 20

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionStatusHandler  commands.TransitionOrderStatusCommandHandler
	updateOrderHandler       commands.UpdateOrderDetailsCommandHandler
	createQuoteHandler       commands.CreateQuoteCommandHandler
	approveQuoteHandler      commands.ApproveQuoteCommandHandler
	rejectQuoteHandler       commands.RejectQuoteCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler
	confirmPaymentHandler    commands.ConfirmPaymentCommandHandler
	refundPaymentHandler     commands.RefundPaymentCommandHandler
	getOrderHandler          queries.GetOrderQueryHandler
	listOrdersForUserHandler queries.ListOrdersForUserQueryHandler
	orderStatisticsHandler   queries.GetOrderStatisticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionStatusHandler commands.TransitionOrderStatusCommandHandler,
	updateOrderHandler commands.UpdateOrderDetailsCommandHandler,
	createQuoteHandler commands.CreateQuoteCommandHandler,
	approveQuoteHandler commands.ApproveQuoteCommandHandler,
	rejectQuoteHandler commands.RejectQuoteCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	refundPaymentHandler commands.RefundPaymentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersForUserHandler queries.ListOrdersForUserQueryHandler,
	orderStatisticsHandler queries.GetOrderStatisticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionStatusHandler:  transitionStatusHandler,
		updateOrderHandler:       updateOrderHandler,
		createQuoteHandler:       createQuoteHandler,
		approveQuoteHandler:      approveQuoteHandler,
		rejectQuoteHandler:       rejectQuoteHandler,
		recordPaymentHandler:     recordPaymentHandler,
		confirmPaymentHandler:    confirmPaymentHandler,
		refundPaymentHandler:     refundPaymentHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersForUserHandler: listOrdersForUserHandler,
		orderStatisticsHandler:   orderStatisticsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/statistics", s.GetOrderStatistics)
	api.GET("/orders/:orderID", s.GetOrder)
	api.PATCH("/orders/:orderID", s.UpdateOrder)
	api.POST("/orders/:orderID/status", s.TransitionOrderStatus)
	api.POST("/orders/:orderID/quotes", s.CreateQuote)
	api.POST("/orders/:orderID/payments", s.RecordPayment)
	api.POST("/quotes/:quoteID/approve", s.ApproveQuote)
	api.POST("/quotes/:quoteID/reject", s.RejectQuote)
	api.POST("/payments/:paymentID/confirm", s.ConfirmPayment)
	api.POST("/payments/:paymentID/refund", s.RefundPayment)
	api.GET("/users/:userID/orders", s.ListOrdersForUser)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return writeBadRequest(ctx, "invalid user_id")
	}

	unit, err := parseCurrency(req.Product.Currency)
	if err != nil {
		return writeBadRequest(ctx, "invalid currency")
	}

	var hotdealID *kernel.UUID
	if req.Product.HotdealID != nil {
		id, idErr := kernel.UUIDFromString(*req.Product.HotdealID)
		if idErr != nil {
			return writeBadRequest(ctx, "invalid hotdeal_id")
		}
		hotdealID = &id
	}

	product, err := order.NewProductSnapshot(
		req.Product.Title,
		kernel.NewMoneyFromMinorUnits(req.Product.UnitPrice, unit),
		req.Product.SourceURL,
		hotdealID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	addressID, err := parseOptionalUUID(req.AddressID)
	if err != nil {
		return writeBadRequest(ctx, "invalid address_id")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), userID, product, req.Quantity,
		addressID, req.Option, req.SpecialRequest,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PATCH /api/v1/orders/:orderID.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	addressID, err := parseOptionalUUID(req.AddressID)
	if err != nil {
		return writeBadRequest(ctx, "invalid address_id")
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(
		orderID, req.Quantity, addressID, req.Option, req.SpecialRequest,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// TransitionOrderStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	target, err := order.ToStatus(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	actor, err := kernel.UUIDFromString(req.Actor)
	if err != nil {
		return writeBadRequest(ctx, "invalid actor")
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, target, actor, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.transitionStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// CreateQuote handles POST /api/v1/orders/:orderID/quotes.
func (s *Server) CreateQuote(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req CreateQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	actor, err := kernel.UUIDFromString(req.Actor)
	if err != nil {
		return writeBadRequest(ctx, "invalid actor")
	}

	unit, err := parseCurrency(req.Currency)
	if err != nil {
		return writeBadRequest(ctx, "invalid currency")
	}

	var fee *kernel.Money
	if req.Fee != nil {
		m := kernel.NewMoneyFromMinorUnits(*req.Fee, unit)
		fee = &m
	}

	cmd, err := commands.NewCreateQuoteCommand(
		kernel.NewUUID(), orderID, actor,
		kernel.NewMoneyFromMinorUnits(req.ProductCost, unit),
		kernel.NewMoneyFromMinorUnits(req.DomesticShipping, unit),
		kernel.NewMoneyFromMinorUnits(req.InternationalShipping, unit),
		fee, req.PaymentMethod, req.ValidUntil, req.Notes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, quoteToResponse(created))
}

// ApproveQuote handles POST /api/v1/quotes/:quoteID/approve.
func (s *Server) ApproveQuote(ctx echo.Context) error {
	quoteID, err := kernel.UUIDFromString(ctx.Param("quoteID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid quote id")
	}

	var req ApproveQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	actor, err := kernel.UUIDFromString(req.Actor)
	if err != nil {
		return writeBadRequest(ctx, "invalid actor")
	}

	cmd, err := commands.NewApproveQuoteCommand(quoteID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	approved, err := s.approveQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteToResponse(approved))
}

// RejectQuote handles POST /api/v1/quotes/:quoteID/reject.
func (s *Server) RejectQuote(ctx echo.Context) error {
	quoteID, err := kernel.UUIDFromString(ctx.Param("quoteID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid quote id")
	}

	var req RejectQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	actor, err := kernel.UUIDFromString(req.Actor)
	if err != nil {
		return writeBadRequest(ctx, "invalid actor")
	}

	cmd, err := commands.NewRejectQuoteCommand(quoteID, actor, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	rejected, err := s.rejectQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteToResponse(rejected))
}

// RecordPayment handles POST /api/v1/orders/:orderID/payments.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req RecordPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	quoteID, err := parseOptionalUUID(req.QuoteID)
	if err != nil {
		return writeBadRequest(ctx, "invalid quote_id")
	}

	unit, err := parseCurrency(req.Currency)
	if err != nil {
		return writeBadRequest(ctx, "invalid currency")
	}

	cmd, err := commands.NewRecordPaymentCommand(
		kernel.NewUUID(), orderID, quoteID,
		kernel.NewMoneyFromMinorUnits(req.Amount, unit),
		req.PaymentMethod,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	recorded, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, paymentToResponse(recorded))
}

// ConfirmPayment handles POST /api/v1/payments/:paymentID/confirm.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid payment id")
	}

	var req ConfirmPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(paymentID, req.ExternalPaymentID, req.Success)
	if err != nil {
		return writeError(ctx, err)
	}

	confirmed, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(confirmed))
}

// RefundPayment handles POST /api/v1/payments/:paymentID/refund.
func (s *Server) RefundPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid payment id")
	}

	cmd, err := commands.NewRefundPaymentCommand(paymentID)
	if err != nil {
		return writeError(ctx, err)
	}

	refunded, err := s.refundPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(refunded))
}

// ListOrdersForUser handles GET /api/v1/users/:userID/orders.
func (s *Server) ListOrdersForUser(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid user id")
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, statusErr := order.ToStatus(raw)
		if statusErr != nil {
			return writeError(ctx, statusErr)
		}
		status = &parsed
	}

	limit := defaultPageSize
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid limit")
		}
	}

	offset := 0
	if raw := ctx.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid offset")
		}
	}

	query, err := queries.NewListOrdersForUserQuery(userID, status, limit, offset)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.listOrdersForUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderStatistics handles GET /api/v1/orders/statistics.
func (s *Server) GetOrderStatistics(ctx echo.Context) error {
	var userID *kernel.UUID
	if raw := ctx.QueryParam("user_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeBadRequest(ctx, "invalid user_id")
		}
		userID = &id
	}

	query, err := queries.NewGetOrderStatisticsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.orderStatisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseCurrency(code string) (currency.Unit, error) {
	if code == "" {
		return kernel.KRW, nil
	}
	return currency.ParseISO(code)
}
