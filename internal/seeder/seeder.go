package seeder

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/database"
	"github.com/Additional-Code/orders/internal/entity"
	repo "github.com/Additional-Code/orders/internal/repository/order"
)

// Module provides the Seeder to Fx.
var Module = fx.Provide(New)

// Seeder inserts sample orders for local setups.
type Seeder struct {
	conns  *database.Connections
	repo   *repo.Repository
	logger *zap.Logger
}

// New constructs a Seeder.
func New(conns *database.Connections, repository *repo.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{conns: conns, repo: repository, logger: logger}
}

// Orders ensures the table exists and inserts samples when it is empty.
// It returns the number of rows inserted.
func (s *Seeder) Orders(ctx context.Context) (int, error) {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	var existing int
	err := s.conns.Scoped(ctx, func(ctx context.Context, conn bun.Conn) error {
		n, err := conn.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
		existing = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.logger.Info("orders already present; skipping seed", zap.Int("count", existing))
		return 0, nil
	}

	samples := []entity.Order{
		{Customer: "Ana", Item: "Widget", Quantity: 3},
		{Customer: "Bob", Item: "Gadget", Quantity: 2},
	}
	for i := range samples {
		if err := s.repo.Create(ctx, &samples[i]); err != nil {
			return i, err
		}
	}

	s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	return len(samples), nil
}
