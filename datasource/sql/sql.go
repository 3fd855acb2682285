// Package sql provides a Source which reads Rows from a database query, and a Sink which
// inserts Rows into a table. Any database/sql driver may be used by supplying a *sql.DB.
// The sqlite (modernc.org/sqlite), postgres (github.com/lib/pq) and mysql
// (github.com/go-sql-driver/mysql) drivers are registered by this package.
package sql

import (
	stdsql "database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

const (
	// SQLite is the driver name for modernc.org/sqlite
	SQLite = "sqlite"
	// Postgres is the driver name for github.com/lib/pq
	Postgres = "postgres"
	// MySQL is the driver name for github.com/go-sql-driver/mysql
	MySQL = "mysql"
)

// connection is either a caller-owned *sql.DB, or a driver and DSN which are opened on demand
type connection struct {
	component string
	db        *stdsql.DB
	driver    string
	dsn       string
}

func (c *connection) validate() error {
	if c.db == nil && (c.driver == "" || c.dsn == "") {
		return errors.ConfigError{Component: c.component, Reason: "either a DB or a Driver and DSN are required"}
	}
	return nil
}

// open returns the database handle, and whether the caller is responsible for closing it
func (c *connection) open() (*stdsql.DB, bool, error) {
	if c.db != nil {
		return c.db, false, nil
	}
	db, err := stdsql.Open(c.driver, c.dsn)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", c.driver, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)
	return db, true, nil
}

// dialect returns the driver name used to pick placeholders and quoting
func (c *connection) dialect() string {
	if c.driver != "" {
		return c.driver
	}
	return SQLite
}

func placeholder(dialect string, n int) string {
	if dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func quoteIdentifier(dialect string, name string) string {
	if dialect == MySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnType(dialect string, kind etl.Kind) string {
	switch kind {
	case etl.IntKind:
		return "BIGINT"
	case etl.FloatKind:
		return "DOUBLE PRECISION"
	case etl.BoolKind:
		return "BOOLEAN"
	case etl.BytesKind:
		if dialect == Postgres {
			return "BYTEA"
		}
		return "BLOB"
	default:
		return "TEXT"
	}
}
