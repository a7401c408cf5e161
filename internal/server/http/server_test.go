package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
)

func TestErrorHandlerRendersDetail(t *testing.T) {
	e := NewEcho(config.Config{}, nil, zap.NewNop())
	e.GET("/orders", func(c echo.Context) error { return nil })
	e.GET("/boom", func(c echo.Context) error { return errors.New("kaboom") })

	tests := []struct {
		method string
		target string
		status int
		detail string
	}{
		{nethttp.MethodGet, "/missing", nethttp.StatusNotFound, "Not Found"},
		{nethttp.MethodDelete, "/orders", nethttp.StatusMethodNotAllowed, "Method Not Allowed"},
		{nethttp.MethodGet, "/boom", nethttp.StatusInternalServerError, "kaboom"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, tt.status)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["detail"] != tt.detail {
			t.Errorf("%s %s: detail = %q, want %q", tt.method, tt.target, body["detail"], tt.detail)
		}
	}
}
