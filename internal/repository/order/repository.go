package order

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/orders/internal/database"
	"github.com/Additional-Code/orders/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/orders/repository/order")

// Repository encapsulates read/write access for orders. Every call runs on
// its own scoped connection.
type Repository struct {
	conns *database.Connections
}

// NewRepository wires a repository backed by the configured database.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{conns: conns}
}

// EnsureSchema creates the orders table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.EnsureSchema")
	defer span.End()

	err := r.conns.Scoped(ctx, ensureSchema)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create table failed")
	}
	return err
}

// List ensures the table exists and returns all orders, newest first.
func (r *Repository) List(ctx context.Context) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	orders := make([]entity.Order, 0)
	err := r.conns.Scoped(ctx, func(ctx context.Context, conn bun.Conn) error {
		if err := ensureSchema(ctx, conn); err != nil {
			return err
		}
		return conn.NewSelect().Model(&orders).OrderExpr("id DESC").Scan(ctx)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

// Create inserts the order; the database assigns ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(
		attribute.String("order.customer", order.Customer),
		attribute.Int("order.quantity", order.Quantity),
	))
	defer span.End()

	err := r.conns.Scoped(ctx, func(ctx context.Context, conn bun.Conn) error {
		_, err := conn.NewInsert().Model(order).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return nil
}
