package provider

import (
	"database/sql"
	"fmt"
)

// TableCursor yields table names from a single query, one pass, in the order
// the server returns them.
type TableCursor struct {
	rows *sql.Rows
	name string
	err  error
}

// Next advances to the next table name. It returns false when the result is
// exhausted or an error occurred; check Err afterwards.
func (c *TableCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		return false
	}
	if err := c.rows.Scan(&c.name); err != nil {
		c.err = fmt.Errorf("failed to scan table name: %w", err)
		return false
	}
	return true
}

// Name is the table name at the current position.
func (c *TableCursor) Name() string { return c.name }

func (c *TableCursor) Err() error { return c.err }

// Close releases the underlying rows. It is safe to call more than once.
func (c *TableCursor) Close() error { return c.rows.Close() }
