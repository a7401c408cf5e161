package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/messaging"
	ordersvc "github.com/Additional-Code/orders/internal/service/order"
	"github.com/Additional-Code/orders/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/orders/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderCreatedHandler logs every order announced on the events topic.
func NewOrderCreatedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.orders.created", trace.WithAttributes(
			attribute.String("messaging.destination", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order created", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		span.SetAttributes(attribute.Int64("order.id", event.ID))

		logger.Info("order created",
			zap.Int64("id", event.ID),
			zap.String("customer", event.Customer),
			zap.String("item", event.Item),
			zap.Int("quantity", event.Quantity),
			zap.Time("created_at", event.CreatedAt),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Topic(),
		Handler: handler,
	}
}
