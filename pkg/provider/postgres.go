package provider

import (
	"net"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/yourusername/bibliotek-tables/pkg/config"
)

type Postgres struct{}

func (Postgres) Name() string { return "PostgreSQL" }
func (Postgres) DriverName() string { return "postgres" }

func (Postgres) DSN(p config.ConnectionParameters) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.Database,
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else {
		u.User = url.User(p.User)
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

func (Postgres) TablesQuery() string {
	return `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		ORDER BY table_name
	`
}
