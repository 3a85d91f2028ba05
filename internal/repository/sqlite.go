package repository

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"
)

// Ent's sqlite dialect expects a driver registered as "sqlite3". The modernc
// driver registers itself as "sqlite", so wrap it under the expected name and
// turn foreign keys on per connection (line_items -> receipts relies on it).
// Used by the test database; production runs on Postgres.

type sqlite3Driver struct {
	*sqlite.Driver
}

type execer interface {
	Exec(query string, args []driver.Value) (driver.Result, error)
}

func (d sqlite3Driver) Open(name string) (driver.Conn, error) {
	conn, err := d.Driver.Open(name)
	if err != nil {
		return nil, err
	}
	if _, err := conn.(execer).Exec("PRAGMA foreign_keys = ON;", nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return conn, nil
}

func init() {
	sql.Register("sqlite3", sqlite3Driver{Driver: &sqlite.Driver{}})
}
