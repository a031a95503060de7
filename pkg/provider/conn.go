package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourusername/bibliotek-tables/pkg/config"
)

var tracer = otel.Tracer("github.com/yourusername/bibliotek-tables/pkg/provider")

// ErrClosed is returned when a released Handle is used again.
var ErrClosed = errors.New("connection handle already closed")

// Handle is one open session to the database server. Whoever receives it
// from Open must Close it.
type Handle struct {
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
	closed  bool
}

// Result is what Open hands back: either a live Handle or the message that
// was printed when connecting failed.
type Result struct {
	handle  *Handle
	message string
}

// Connected wraps a live handle.
func Connected(h *Handle) Result { return Result{handle: h} }

// Failed records a connection failure.
func Failed(message string) Result { return Result{message: message} }

// Handle returns the live handle and true, or nil and false for a failure.
func (r Result) Handle() (*Handle, bool) { return r.handle, r.handle != nil }

// Message is the failure message; empty when connected.
func (r Result) Message() string { return r.message }

// Open connects to the database described by p and reports the outcome on w.
// Connector errors never escape: they are printed and turned into Failed.
func Open(ctx context.Context, w io.Writer, d Dialect, p config.ConnectionParameters) Result {
	ctx, span := tracer.Start(ctx, "provider.Open", trace.WithAttributes(
		attribute.String("db.system", d.DriverName()),
		attribute.String("db.name", p.Database),
	))
	defer span.End()

	slog.Debug("opening database connection", "params", p)

	h, err := connect(ctx, d, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("database connection failed", "driver", d.DriverName(), "database", p.Database, "error", err)

		msg := fmt.Sprintf("❌ Error connecting to %s: %v", d.Name(), err)
		fmt.Fprintln(w, msg)
		return Failed(msg)
	}

	slog.Info("database connection established", "driver", d.DriverName(), "database", p.Database)
	fmt.Fprintf(w, "✅ Connected to %s\n", p.Database)
	return Connected(h)
}

func connect(ctx context.Context, d Dialect, p config.ConnectionParameters) (*Handle, error) {
	db, err := sql.Open(d.DriverName(), d.DSN(p))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s db: %w", d.DriverName(), err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, err
	}

	return &Handle{db: db, conn: conn, dialect: d}, nil
}

// ListTables runs the dialect's table query on the session. The returned
// cursor walks the result once and must be closed.
func (h *Handle) ListTables(ctx context.Context) (*TableCursor, error) {
	if h.closed {
		return nil, ErrClosed
	}
	rows, err := h.conn.QueryContext(ctx, h.dialect.TablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return &TableCursor{rows: rows}, nil
}

// Close releases the session. Calls after the first are no-ops.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return errors.Join(h.conn.Close(), h.db.Close())
}
