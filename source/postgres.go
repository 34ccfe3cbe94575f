package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/merchantdash/datagrid"
)

// Postgres runs a query and hands every row to the grid as a record.
type Postgres struct {
	DB    *sql.DB
	Query string
	Args  []interface{}
}

func (p Postgres) Records(ctx context.Context) ([]datagrid.Record, error) {
	return QueryRecords(ctx, p.DB, p.Query, p.Args...)
}

// OpenPostgres opens and pings a lib/pq connection pool.
func OpenPostgres(ctx context.Context, connStr string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("source: open database: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(max(1, maxConns/2))
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("source: ping database: %w", err)
	}
	return db, nil
}

// QueryRecords runs query and scans every row into a record keyed by column name.
func QueryRecords(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]datagrid.Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("source: query failed: %w", err)
	}
	defer rows.Close()

	records, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("source: scan: %w", err)
	}
	return records, nil
}

// Rows is the subset of *sql.Rows scanRows needs.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanRows(rows Rows) ([]datagrid.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []datagrid.Record
	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(datagrid.Record, len(cols))
		for i, col := range cols {
			// text and numeric columns arrive as []byte from lib/pq
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
