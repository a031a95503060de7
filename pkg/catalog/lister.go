// Package catalog prints the tables of a connected database.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourusername/bibliotek-tables/pkg/provider"
)

var tracer = otel.Tracer("github.com/yourusername/bibliotek-tables/pkg/catalog")

// FailedLine is printed when no connection could be made.
const FailedLine = "❌ Failed to connect."

// Report prints the tables reachable through res, then releases the handle.
// A failed result prints FailedLine and runs no query. The handle is closed on
// every path, including a panic while printing; the closing line is only
// written when listing and closing both succeeded.
func Report(ctx context.Context, w io.Writer, res provider.Result, database string) (err error) {
	h, ok := res.Handle()
	if !ok {
		fmt.Fprintln(w, FailedLine)
		return nil
	}

	ctx, span := tracer.Start(ctx, "catalog.Report", trace.WithAttributes(
		attribute.String("db.name", database),
	))
	defer span.End()

	listed := false
	defer func() {
		if cerr := h.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close connection: %w", cerr))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		if listed {
			fmt.Fprintln(w, "\n🔒 Connection closed.")
		}
	}()

	n, err := printTables(ctx, w, h, database)
	if err != nil {
		return err
	}
	listed = true
	span.SetAttributes(attribute.Int("db.tables", n))
	slog.Debug("listed tables", "database", database, "count", n)
	return nil
}

func printTables(ctx context.Context, w io.Writer, h *provider.Handle, database string) (int, error) {
	cur, err := h.ListTables(ctx)
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	fmt.Fprintf(w, "\n📚 Tables in %s:\n", database)

	n := 0
	for cur.Next() {
		fmt.Fprintf(w, "- %s\n", cur.Name())
		n++
	}
	if err := cur.Err(); err != nil {
		return n, fmt.Errorf("failed to read table names: %w", err)
	}
	return n, cur.Close()
}
