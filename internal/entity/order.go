package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Order represents a customer order stored in the relational database.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Customer  string    `bun:"customer,notnull"`
	Item      string    `bun:"item,notnull"`
	Quantity  int       `bun:"quantity,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
