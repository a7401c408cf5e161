package order

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/dto"
	"github.com/Additional-Code/orders/internal/entity"
	"github.com/Additional-Code/orders/internal/messaging"
	repo "github.com/Additional-Code/orders/internal/repository/order"
	"github.com/Additional-Code/orders/internal/validation"
	"github.com/Additional-Code/orders/pkg/errorbank"
)

// PublishTimeout bounds how long a create waits on the message bus.
const PublishTimeout = 2 * time.Second

var (
	serviceTracer = otel.Tracer("github.com/Additional-Code/orders/service/order")
	serviceMeter  = otel.Meter("github.com/Additional-Code/orders/service/order")
)

// Service encapsulates business logic around orders.
type Service struct {
	repo      *repo.Repository
	logger    *zap.Logger
	publisher messaging.Client
	created   metric.Int64Counter
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Logger     *zap.Logger
	Publisher  messaging.Client `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	created, err := serviceMeter.Int64Counter("orders.created",
		metric.WithDescription("Orders persisted by the service"),
	)
	if err != nil {
		return nil, err
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      p.Repository,
		logger:    logger,
		publisher: p.Publisher,
		created:   created,
	}, nil
}

// List returns every order, newest first. The table is created on demand.
func (s *Service) List(ctx context.Context) ([]entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		s.logger.Error("list orders failed", zap.Error(err))
		return nil, errorbank.Wrap(errorbank.KindInternal, err)
	}
	return orders, nil
}

// Create validates and persists a new order, then announces it.
func (s *Service) Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.String("order.item", req.Item),
		attribute.Int("order.quantity", req.Quantity),
	))
	defer span.End()

	order := &entity.Order{
		Customer: req.Customer,
		Item:     req.Item,
		Quantity: req.Quantity,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		s.logger.Error("create order failed", zap.Error(err))
		return nil, errorbank.Wrap(errorbank.KindInternal, err)
	}

	s.created.Add(ctx, 1)
	s.publishOrderCreated(ctx, order)
	return order, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:        order.ID,
		Customer:  order.Customer,
		Item:      order.Item,
		Quantity:  order.Quantity,
		CreatedAt: order.CreatedAt,
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order created", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, []byte(strconv.FormatInt(order.ID, 10)), payload); err != nil {
		s.logger.Error("publish order created", zap.Int64("id", order.ID), zap.Error(err))
	}
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
