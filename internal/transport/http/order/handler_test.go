package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/database/databasetest"
	repo "github.com/Additional-Code/orders/internal/repository/order"
	httpserver "github.com/Additional-Code/orders/internal/server/http"
	service "github.com/Additional-Code/orders/internal/service/order"
	transport "github.com/Additional-Code/orders/internal/transport/http/order"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	svc, err := service.NewService(service.Params{
		Repository: repo.NewRepository(databasetest.New(t)),
		Logger:     zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	e := httpserver.NewEcho(config.Config{}, nil, zap.NewNop())
	transport.Register(e, transport.NewHandler(svc))
	return e
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

type listedOrder struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func TestFreshDatabaseScenario(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/orders")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", rec.Code, rec.Body)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("list body = %s, want []", got)
	}

	rec = do(e, http.MethodPost, "/orders?customer=Bob&item=Gadget&quantity=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	want := map[string]any{"id": float64(1), "customer": "Bob", "item": "Gadget", "quantity": float64(2)}
	if len(created) != len(want) {
		t.Fatalf("create body = %v, want %v", created, want)
	}
	for k, v := range want {
		if created[k] != v {
			t.Errorf("create[%s] = %v, want %v", k, created[k], v)
		}
	}

	rec = do(e, http.MethodGet, "/orders")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", rec.Code, rec.Body)
	}
	var listed []listedOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d orders, want 1", len(listed))
	}
	o := listed[0]
	if o.ID != 1 || o.Customer != "Bob" || o.Item != "Gadget" || o.Quantity != 2 || o.CreatedAt.IsZero() {
		t.Errorf("listed = %+v", o)
	}
}

func TestCreateBeforeListReturns500(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodPost, "/orders?customer=Bob&item=Gadget&quantity=2")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body["detail"], "orders") {
		t.Errorf("detail = %q, want raw missing-table text", body["detail"])
	}
}

func TestCreateValidation(t *testing.T) {
	e := newTestEcho(t)
	if rec := do(e, http.MethodGet, "/orders"); rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	tests := []struct {
		name   string
		query  string
		status int
		detail string
	}{
		{name: "zero quantity", query: "customer=X&item=Y&quantity=0", status: http.StatusBadRequest, detail: "quantity"},
		{name: "negative quantity", query: "customer=X&item=Y&quantity=-3", status: http.StatusBadRequest, detail: "quantity"},
		{name: "missing item", query: "customer=X&quantity=1", status: http.StatusUnprocessableEntity, detail: "item"},
		{name: "non-numeric quantity", query: "customer=X&item=Y&quantity=many", status: http.StatusUnprocessableEntity, detail: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/orders?"+tt.query)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body["detail"], tt.detail) {
				t.Errorf("detail = %q, want it to mention %q", body["detail"], tt.detail)
			}
		})
	}

	rec := do(e, http.MethodGet, "/orders")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("rejected creates wrote rows: %s", got)
	}
}

func TestCreateAcceptsEmptyText(t *testing.T) {
	e := newTestEcho(t)
	do(e, http.MethodGet, "/orders")

	rec := do(e, http.MethodPost, "/orders?customer=&item=&quantity=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestListNewestFirst(t *testing.T) {
	e := newTestEcho(t)
	do(e, http.MethodGet, "/orders")

	for _, item := range []string{"a", "b", "c", "d"} {
		if rec := do(e, http.MethodPost, "/orders?customer=Ana&item="+item+"&quantity=1"); rec.Code != http.StatusOK {
			t.Fatalf("create %s: status %d", item, rec.Code)
		}
	}

	var listed []listedOrder
	if err := json.Unmarshal(do(e, http.MethodGet, "/orders").Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 4 {
		t.Fatalf("len = %d, want 4", len(listed))
	}
	for i := 0; i+1 < len(listed); i++ {
		if listed[i].ID <= listed[i+1].ID {
			t.Errorf("not descending at %d: %d, %d", i, listed[i].ID, listed[i+1].ID)
		}
	}
}
