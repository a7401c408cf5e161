package app

import (
	"path/filepath"
	"testing"

	"go.uber.org/fx"
)

func TestGraphsResolve(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "orders.db"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("OBS_ENABLE_METRICS", "false")

	tests := []struct {
		name string
		opts fx.Option
	}{
		{name: "http", opts: HTTP},
		{name: "worker", opts: Worker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fx.ValidateApp(tt.opts, fx.NopLogger); err != nil {
				t.Fatalf("validate %s graph: %v", tt.name, err)
			}
		})
	}
}
