package health

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Additional-Code/orders/internal/presentation/http/response"
	service "github.com/Additional-Code/orders/internal/service/health"
)

// Module wires the health endpoints.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(Register),
)

// Handler exposes liveness and database health over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a health Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/healthz", h.liveness)
	e.GET("/db/health", h.database)
}

func (h *Handler) liveness(c echo.Context) error {
	return response.New(c).WithData(h.svc.Liveness()).Build()
}

func (h *Handler) database(c echo.Context) error {
	b := response.New(c)
	res, err := h.svc.Database(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(res).Build()
}
