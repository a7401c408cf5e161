package health

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/database"
	"github.com/Additional-Code/orders/internal/dto"
	"github.com/Additional-Code/orders/pkg/errorbank"
)

// Module provides the health service to Fx.
var Module = fx.Provide(NewService)

// Prober runs a trivial database round trip.
type Prober interface {
	Probe(ctx context.Context) (map[string]int, error)
}

// Service answers liveness and database health checks.
type Service struct {
	db     Prober
	logger *zap.Logger
}

// NewService builds a health Service over the database connections.
func NewService(conns *database.Connections, logger *zap.Logger) *Service {
	return New(conns, logger)
}

// New builds a health Service over any Prober.
func New(db Prober, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Liveness reports that the process is running. It never touches the database.
func (s *Service) Liveness() dto.LivenessResponse {
	return dto.LivenessResponse{Status: "ok"}
}

// Database checks that the database answers a query.
func (s *Service) Database(ctx context.Context) (dto.DatabaseHealthResponse, error) {
	row, err := s.db.Probe(ctx)
	if err != nil {
		s.logger.Warn("database health check failed", zap.Error(err))
		return dto.DatabaseHealthResponse{}, errorbank.Wrap(errorbank.KindInternal, err)
	}
	return dto.DatabaseHealthResponse{DB: "ok", Result: row}, nil
}
