package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bibliotek-tables/pkg/config"
	"github.com/yourusername/bibliotek-tables/pkg/provider"
)

type mockDialect struct {
	dsn string
}

func (mockDialect) Name() string { return "Mock" }
func (mockDialect) DriverName() string { return "sqlmock" }
func (m mockDialect) DSN(config.ConnectionParameters) string { return m.dsn }
func (mockDialect) TablesQuery() string { return "SHOW TABLES" }

// openMock returns a connected result backed by go-sqlmock. The caller sets
// query expectations on the returned mock; ping and close are handled here.
func openMock(t *testing.T, expect func(mock sqlmock.Sqlmock)) (provider.Result, sqlmock.Sqlmock) {
	t.Helper()

	dsn := "catalog_" + strings.ReplaceAll(t.Name(), "/", "_")
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if expect != nil {
		expect(mock)
	}
	mock.ExpectClose()

	res := provider.Open(context.Background(), &bytes.Buffer{}, mockDialect{dsn: dsn}, config.Default())
	_, ok := res.Handle()
	require.True(t, ok, res.Message())
	return res, mock
}

func TestReportListsTablesInOrder(t *testing.T) {
	res, mock := openMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SHOW TABLES").WillReturnRows(
			sqlmock.NewRows([]string{"Tables_in_ga_bibliotek"}).
				AddRow("books").
				AddRow("members").
				AddRow("loans"),
		)
	})

	var out bytes.Buffer
	require.NoError(t, Report(context.Background(), &out, res, "ga_bibliotek"))

	want := "\n📚 Tables in ga_bibliotek:\n" +
		"- books\n" +
		"- members\n" +
		"- loans\n" +
		"\n🔒 Connection closed.\n"
	assert.Equal(t, want, out.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportNoTables(t *testing.T) {
	res, mock := openMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SHOW TABLES").WillReturnRows(sqlmock.NewRows([]string{"Tables_in_testdb"}))
	})

	var out bytes.Buffer
	require.NoError(t, Report(context.Background(), &out, res, "testdb"))

	assert.Equal(t, "\n📚 Tables in testdb:\n\n🔒 Connection closed.\n", out.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportFailedResult(t *testing.T) {
	var out bytes.Buffer
	err := Report(context.Background(), &out, provider.Failed("❌ Error connecting to MySQL: refused"), "ga_bibliotek")

	require.NoError(t, err)
	assert.Equal(t, FailedLine+"\n", out.String())
}

func TestReportQueryErrorStillCloses(t *testing.T) {
	res, mock := openMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SHOW TABLES").WillReturnError(errors.New("no database selected"))
	})

	var out bytes.Buffer
	err := Report(context.Background(), &out, res, "ga_bibliotek")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database selected")
	assert.NotContains(t, out.String(), "Connection closed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRowErrorStillCloses(t *testing.T) {
	res, mock := openMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SHOW TABLES").WillReturnRows(
			sqlmock.NewRows([]string{"name"}).
				AddRow("books").
				AddRow("members").
				RowError(1, errors.New("connection reset by peer")),
		)
	})

	var out bytes.Buffer
	err := Report(context.Background(), &out, res, "ga_bibliotek")

	require.Error(t, err)
	assert.Equal(t, "\n📚 Tables in ga_bibliotek:\n- books\n", out.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

// panicWriter panics once it is asked to write a line containing trigger.
type panicWriter struct {
	bytes.Buffer
	trigger string
}

func (w *panicWriter) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.trigger) {
		panic("write failed: " + w.trigger)
	}
	return w.Buffer.Write(p)
}

func TestReportPanicWhilePrintingStillCloses(t *testing.T) {
	res, mock := openMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SHOW TABLES").WillReturnRows(
			sqlmock.NewRows([]string{"name"}).AddRow("books").AddRow("members").AddRow("loans"),
		)
	})

	w := &panicWriter{trigger: "members"}
	assert.Panics(t, func() {
		_ = Report(context.Background(), w, res, "ga_bibliotek")
	})

	assert.Equal(t, "\n📚 Tables in ga_bibliotek:\n- books\n", w.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
