package sql

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// MySQLDSN constructs a MySQL DSN
func MySQLDSN(host string, port int, user string, password string, database string) string {
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = database
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
