package seeder

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/database/databasetest"
	repo "github.com/Additional-Code/orders/internal/repository/order"
)

func TestOrdersSeedsOnce(t *testing.T) {
	conns := databasetest.New(t)
	r := repo.NewRepository(conns)
	s := New(conns, r, zap.NewNop())
	ctx := context.Background()

	n, err := s.Orders(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted %d, want 2", n)
	}

	n, err = s.Orders(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Errorf("second seed inserted %d, want 0", n)
	}

	orders, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].Customer != "Bob" {
		t.Errorf("orders = %+v", orders)
	}
}

func TestOrdersReleasesConnection(t *testing.T) {
	conns := databasetest.New(t)
	s := New(conns, repo.NewRepository(conns), zap.NewNop())

	if _, err := s.Orders(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if stats := conns.DB.Stats(); stats.InUse != 0 || stats.Idle != 0 {
		t.Errorf("connections left behind: in use %d, idle %d", stats.InUse, stats.Idle)
	}
}
