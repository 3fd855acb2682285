package sql

import (
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDSN constructs a Postgres connection string
func PostgresDSN(host string, port int, user string, password string, database string, sslMode string) string {
	if port == 0 {
		port = 5432
	}
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	)
}
