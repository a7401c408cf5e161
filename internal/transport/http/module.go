package http

import (
	"go.uber.org/fx"

	healthtransport "github.com/Additional-Code/orders/internal/transport/http/health"
	ordertransport "github.com/Additional-Code/orders/internal/transport/http/order"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	healthtransport.Module,
	ordertransport.Module,
)
