package grpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	healthsvc "github.com/Additional-Code/orders/internal/service/health"
)

type stubProber struct{ err error }

func (s stubProber) Probe(context.Context) (map[string]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]int{"ok": 1}, nil
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		service string
		probe   error
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "liveness", service: "", probe: errors.New("down"), want: healthpb.HealthCheckResponse_SERVING},
		{name: "db up", service: DatabaseService, want: healthpb.HealthCheckResponse_SERVING},
		{name: "db down", service: DatabaseService, probe: errors.New("down"), want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewHealthServer(healthsvc.New(stubProber{err: tt.probe}, nil))
			resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: tt.service})
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if resp.GetStatus() != tt.want {
				t.Errorf("status = %s, want %s", resp.GetStatus(), tt.want)
			}
		})
	}
}

func TestHealthCheckUnknownService(t *testing.T) {
	srv := NewHealthServer(healthsvc.New(stubProber{}, nil))

	_, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "payments"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("code = %s, want NotFound", status.Code(err))
	}
}
