package order

import (
	"go.uber.org/fx"

	service "github.com/Additional-Code/orders/internal/service/order"
)

// Module wires HTTP order handlers.
var Module = fx.Options(
	fx.Provide(func(svc *service.Service) *Handler {
		return NewHandler(svc)
	}),
	fx.Invoke(Register),
)
