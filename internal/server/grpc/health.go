package grpc

import (
	"context"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	healthsvc "github.com/Additional-Code/orders/internal/service/health"
	"github.com/Additional-Code/orders/pkg/errorbank"
)

// DatabaseService is the health service name reporting database reachability.
const DatabaseService = "orders.db"

// HealthServer answers grpc.health.v1 checks: the empty service name is
// process liveness, DatabaseService probes the database.
type HealthServer struct {
	healthpb.UnimplementedHealthServer

	svc *healthsvc.Service
}

// NewHealthServer wraps the health service for gRPC.
func NewHealthServer(svc *healthsvc.Service) *HealthServer {
	return &HealthServer{svc: svc}
}

// Check implements healthpb.HealthServer.
func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "":
		if h.svc.Liveness().Status != "ok" {
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
	case DatabaseService:
		if _, err := h.svc.Database(ctx); err != nil {
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
	default:
		appErr := errorbank.NotFound("unknown service: " + req.GetService())
		return nil, status.Error(appErr.GRPCCode(), appErr.Message())
	}
}
