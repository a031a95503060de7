package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/bibliotek-tables/pkg/config"
)

// ErrUnknownDriver is returned by Lookup for a DB_DRIVER value with no dialect.
var ErrUnknownDriver = errors.New("unknown database driver")

// Dialect knows how to reach one kind of database server and how to ask it
// for the tables of the connected schema.
type Dialect interface {
	// Name is the human readable backend name used in console messages.
	Name() string
	// DriverName is the database/sql driver the dialect registers under.
	DriverName() string
	// DSN builds the driver specific data source name.
	DSN(p config.ConnectionParameters) string
	// TablesQuery returns a query yielding one table name per row.
	TablesQuery() string
}

var dialects = map[string]Dialect{
	"mysql":    MySQL{},
	"postgres": Postgres{},
	"sqlite":   SQLite{},
}

// Lookup returns the dialect registered for a DB_DRIVER value.
func Lookup(driver string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return d, nil
}
