package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/database"
	"github.com/Additional-Code/orders/internal/database/databasetest"
	httpserver "github.com/Additional-Code/orders/internal/server/http"
	service "github.com/Additional-Code/orders/internal/service/health"
	transport "github.com/Additional-Code/orders/internal/transport/http/health"
)

func newTestEcho(conns *database.Connections) *echo.Echo {
	e := httpserver.NewEcho(config.Config{}, nil, zap.NewNop())
	transport.Register(e, transport.NewHandler(service.NewService(conns, zap.NewNop())))
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	e := newTestEcho(databasetest.Unreachable(t))

	rec := get(e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestDatabaseHealth(t *testing.T) {
	e := newTestEcho(databasetest.New(t))

	rec := get(e, "/db/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"db":"ok","result":{"ok":1}}` {
		t.Errorf("body = %s", got)
	}
}

func TestDatabaseHealthUnreachable(t *testing.T) {
	e := newTestEcho(databasetest.Unreachable(t))

	rec := get(e, "/db/health")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["detail"] == "" {
		t.Error("detail should carry the connection error text")
	}
}
