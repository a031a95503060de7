// Command listtables connects to the library database described by the DB_*
// environment variables, prints the tables of its schema and disconnects.
//
// A connection failure is reported on stdout and still exits 0; only
// configuration and query errors make the process exit 1.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/yourusername/bibliotek-tables/pkg/catalog"
	"github.com/yourusername/bibliotek-tables/pkg/config"
	"github.com/yourusername/bibliotek-tables/pkg/provider"
	"github.com/yourusername/bibliotek-tables/pkg/telemetry"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx := context.Background()
	lookup := envLookup(".env")

	initLogger(os.Stderr, lookup)

	shutdownTracer, err := telemetry.InitTracer(ctx, "bibliotek-tables", telemetry.OptionsFromEnv(lookup))
	if err != nil {
		slog.Warn("failed to init tracer", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	if err := run(ctx, os.Stdout, lookup); err != nil {
		slog.Error("listing tables failed", "error", err)
		return 1
	}
	return 0
}

// run is the whole program: configuration, one connection, one query.
func run(ctx context.Context, stdout io.Writer, lookup config.LookupFunc) error {
	params, err := config.Load(lookup, "")
	if err != nil {
		return err
	}
	dialect, err := provider.Lookup(params.Driver)
	if err != nil {
		return err
	}

	res := provider.Open(ctx, stdout, dialect, params)
	return catalog.Report(ctx, stdout, res, params.Database)
}

// envLookup resolves variables from the process environment first and then
// from the given dotenv files. Missing files are ignored.
func envLookup(files ...string) config.LookupFunc {
	fileEnv := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range vals {
			if _, seen := fileEnv[k]; !seen {
				fileEnv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
}

func initLogger(w io.Writer, lookup config.LookupFunc) {
	level := slog.LevelInfo
	if v, ok := lookup("LOG_LEVEL"); ok {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			fmt.Fprintf(w, "invalid LOG_LEVEL %q, using info\n", v)
			level = slog.LevelInfo
		}
	}

	var handler slog.Handler
	format, _ := lookup("LOG_FORMAT")
	switch strings.ToLower(format) {
	case "text", "pretty":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	slog.SetDefault(slog.New(handler))
}
