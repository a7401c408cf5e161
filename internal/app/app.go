package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/database"
	"github.com/Additional-Code/orders/internal/logger"
	"github.com/Additional-Code/orders/internal/messaging"
	"github.com/Additional-Code/orders/internal/observability"
	repositoryorder "github.com/Additional-Code/orders/internal/repository/order"
	grpcserver "github.com/Additional-Code/orders/internal/server/grpc"
	httpserver "github.com/Additional-Code/orders/internal/server/http"
	servicehealth "github.com/Additional-Code/orders/internal/service/health"
	serviceorder "github.com/Additional-Code/orders/internal/service/order"
	transporthttp "github.com/Additional-Code/orders/internal/transport/http"
	"github.com/Additional-Code/orders/internal/worker"
	workerorder "github.com/Additional-Code/orders/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	serviceorder.Module,
	servicehealth.Module,
)

// HTTP wires the HTTP transport and the optional gRPC health listener.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
	grpcserver.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
