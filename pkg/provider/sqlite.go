package provider

import (
	"github.com/yourusername/bibliotek-tables/pkg/config"
	_ "modernc.org/sqlite"
)

// SQLite reads a database file. The file must already exist: mode=rw stops
// the driver from creating an empty database for a mistyped path.
type SQLite struct{}

func (SQLite) Name() string { return "SQLite" }
func (SQLite) DriverName() string { return "sqlite" }

func (SQLite) DSN(p config.ConnectionParameters) string {
	return "file:" + p.Path + "?mode=rw"
}

func (SQLite) TablesQuery() string {
	return `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
}
