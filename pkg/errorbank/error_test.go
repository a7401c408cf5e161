package errorbank

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   codes.Code
	}{
		{BadRequest("x"), http.StatusBadRequest, codes.InvalidArgument},
		{NotFound("x"), http.StatusNotFound, codes.NotFound},
		{Unprocessable("x"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{New(KindMethodNotAllowed, "x"), http.StatusMethodNotAllowed, codes.Unimplemented},
		{Internal("x"), http.StatusInternalServerError, codes.Internal},
		{nil, http.StatusInternalServerError, codes.Internal},
	}

	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.err.Kind(), got, tt.status)
		}
		if got := tt.err.GRPCCode(); got != tt.code {
			t.Errorf("%s: grpc code = %s, want %s", tt.err.Kind(), got, tt.code)
		}
	}
}

func TestFromKeepsRawText(t *testing.T) {
	cause := errors.New(`relation "orders" does not exist`)

	appErr := From(cause)
	if appErr.Kind() != KindInternal {
		t.Fatalf("kind = %s, want internal", appErr.Kind())
	}
	if appErr.Message() != cause.Error() {
		t.Errorf("message = %q, want %q", appErr.Message(), cause.Error())
	}
	if appErr.Error() != cause.Error() {
		t.Errorf("error text should not repeat the cause: %q", appErr.Error())
	}
	if !errors.Is(appErr, cause) {
		t.Error("cause should be reachable with errors.Is")
	}
}

func TestFromPassesThroughAppError(t *testing.T) {
	orig := BadRequest("quantity must be > 0")
	wrapped := errors.Join(errors.New("context"), orig)

	if got := From(wrapped); got != orig {
		t.Errorf("From should unwrap the original AppError, got %v", got)
	}
	if From(nil) != nil {
		t.Error("From(nil) should be nil")
	}
}

func TestFromStatus(t *testing.T) {
	if got := FromStatus(http.StatusNotFound, "Not Found"); got.Kind() != KindNotFound {
		t.Errorf("kind = %s, want not_found", got.Kind())
	}
	if got := FromStatus(http.StatusTeapot, "teapot"); got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("unknown status should map to 500, got %d", got.StatusCode())
	}
}
