package provider

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/yourusername/bibliotek-tables/pkg/config"
)

// MySQL is the default dialect.
type MySQL struct{}

func (MySQL) Name() string { return "MySQL" }
func (MySQL) DriverName() string { return "mysql" }

func (MySQL) DSN(p config.ConnectionParameters) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.DBName = p.Database
	return cfg.FormatDSN()
}

func (MySQL) TablesQuery() string { return "SHOW TABLES" }
