package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Defaults used when the corresponding environment variable is absent.
const (
	DefaultDriver   = "mysql"
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 3306
	DefaultUser     = "root"
	DefaultPassword = ""
	DefaultDatabase = "ga_bibliotek"
	DefaultSSLMode  = "disable"
)

// LookupFunc reports the value of an environment variable and whether it is set.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ConnectionParameters describes where and how to connect. It is built once
// at startup and passed around by value.
type ConnectionParameters struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Path     string // SQLite database file
	SSLMode  string // PostgreSQL only
}

// Default returns the parameters used when nothing is configured.
func Default() ConnectionParameters {
	return ConnectionParameters{
		Driver:   DefaultDriver,
		Host:     DefaultHost,
		Port:     DefaultPort,
		User:     DefaultUser,
		Password: DefaultPassword,
		Database: DefaultDatabase,
		Path:     DefaultDatabase + ".db",
		SSLMode:  DefaultSSLMode,
	}
}

// Load resolves each field independently: the database override wins for the
// database name, then the environment, then the default. A variable that is
// set to the empty string counts as set.
func Load(lookup LookupFunc, database string) (ConnectionParameters, error) {
	p := ConnectionParameters{
		Driver:   get(lookup, "DB_DRIVER", DefaultDriver),
		Host:     get(lookup, "DB_HOST", DefaultHost),
		Port:     DefaultPort,
		User:     get(lookup, "DB_USER", DefaultUser),
		Password: get(lookup, "DB_PASSWORD", DefaultPassword),
		Database: database,
		SSLMode:  get(lookup, "DB_SSLMODE", DefaultSSLMode),
	}

	if v, ok := lookup("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ConnectionParameters{}, fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		p.Port = port
	}

	if p.Database == "" {
		p.Database = get(lookup, "DB_NAME", DefaultDatabase)
	}
	p.Path = get(lookup, "DB_PATH", p.Database+".db")

	return p, nil
}

// FromEnv loads parameters from the process environment.
func FromEnv(database string) (ConnectionParameters, error) {
	return Load(os.LookupEnv, database)
}

// LogValue keeps the password out of structured logs.
func (p ConnectionParameters) LogValue() slog.Value {
	pass := ""
	if p.Password != "" {
		pass = "******"
	}
	return slog.GroupValue(
		slog.String("driver", p.Driver),
		slog.String("host", p.Host),
		slog.Int("port", p.Port),
		slog.String("user", p.User),
		slog.String("password", pass),
		slog.String("database", p.Database),
	)
}

func get(lookup LookupFunc, key, fallback string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return fallback
}
