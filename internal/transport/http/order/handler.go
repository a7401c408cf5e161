package order

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Additional-Code/orders/internal/dto"
	"github.com/Additional-Code/orders/internal/entity"
	"github.com/Additional-Code/orders/internal/presentation/http/response"
	"github.com/Additional-Code/orders/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/orders/transport/http/order")

// Service is the order behaviour the handler depends on.
type Service interface {
	List(ctx context.Context) ([]entity.Order, error)
	Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error)
}

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/orders", h.list)
	e.POST("/orders", h.create)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toDTO(&orders[i]))
	}
	return b.WithData(out).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	req, err := bindCreateRequest(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	span.SetAttributes(
		attribute.String("order.customer", req.Customer),
		attribute.Int("order.quantity", req.Quantity),
	)
	defer span.End()

	order, err := h.svc.Create(ctx, req)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.CreatedOrderResponse{
		ID:       order.ID,
		Customer: order.Customer,
		Item:     order.Item,
		Quantity: order.Quantity,
	}).Build()
}

// bindCreateRequest reads customer, item and quantity from the query
// string. All three must be present; empty text values are accepted.
func bindCreateRequest(c echo.Context) (dto.CreateOrderRequest, error) {
	var req dto.CreateOrderRequest

	params := c.QueryParams()
	for _, name := range []string{"customer", "item", "quantity"} {
		if _, ok := params[name]; !ok {
			return req, errorbank.Unprocessable(fmt.Sprintf("missing query parameter: %s", name))
		}
	}
	req.Customer = params.Get("customer")
	req.Item = params.Get("item")

	if err := echo.QueryParamsBinder(c).MustInt("quantity", &req.Quantity).BindError(); err != nil {
		return req, errorbank.Unprocessable("quantity must be an integer", errorbank.WithCause(err))
	}
	return req, nil
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		Customer:  order.Customer,
		Item:      order.Item,
		Quantity:  order.Quantity,
		CreatedAt: order.CreatedAt,
	}
}
