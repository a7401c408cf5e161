package order

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var createTableStatements = map[dialect.Name]string{
	dialect.PG: `CREATE TABLE IF NOT EXISTS orders (
	id SERIAL PRIMARY KEY,
	customer VARCHAR(255) NOT NULL,
	item VARCHAR(255) NOT NULL,
	quantity INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	dialect.MySQL: `CREATE TABLE IF NOT EXISTS orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	customer VARCHAR(255) NOT NULL,
	item VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	dialect.SQLite: `CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer VARCHAR(255) NOT NULL,
	item VARCHAR(255) NOT NULL,
	quantity INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
}

// ensureSchema creates the orders table when it is missing. Safe to repeat.
func ensureSchema(ctx context.Context, conn bun.Conn) error {
	name := conn.Dialect().Name()
	stmt, ok := createTableStatements[name]
	if !ok {
		return fmt.Errorf("no orders schema for dialect %s", name)
	}
	_, err := conn.ExecContext(ctx, stmt)
	return err
}
