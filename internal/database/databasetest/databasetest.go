// Package databasetest opens throwaway SQLite databases for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/database"
)

// New returns Connections backed by a fresh SQLite file under t.TempDir.
func New(t testing.TB) *database.Connections {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "orders.db")
	conns, err := database.Open(config.Database{Driver: "sqlite", URL: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conns.Close() })
	return conns
}

// Unreachable returns Connections whose every acquisition fails.
func Unreachable(t testing.TB) *database.Connections {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "missing", "orders.db") + "?mode=ro"
	conns, err := database.Open(config.Database{Driver: "sqlite", URL: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conns.Close() })
	return conns
}
