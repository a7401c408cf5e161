package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/orders/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestBuildSuccessWritesBareData(t *testing.T) {
	c, rec := newContext()

	if err := New(c).WithData(map[string]string{"status": "ok"}).Build(); err != nil {
		t.Fatalf("build: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || len(body) != 1 {
		t.Errorf("body = %v", body)
	}
}

func TestBuildErrorUsesKindStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		detail string
	}{
		{errorbank.BadRequest("quantity must be > 0"), http.StatusBadRequest, "quantity must be > 0"},
		{errors.New("connection refused"), http.StatusInternalServerError, "connection refused"},
		{errorbank.Unprocessable("missing query parameter: item"), http.StatusUnprocessableEntity, "missing query parameter: item"},
	}

	for _, tt := range tests {
		c, rec := newContext()
		if err := New(c).WithError(tt.err).Build(); err != nil {
			t.Fatalf("build: %v", err)
		}
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		var body ErrorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Detail != tt.detail {
			t.Errorf("detail = %q, want %q", body.Detail, tt.detail)
		}
	}
}
