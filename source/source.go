// Package source loads the records a grid displays.
package source

import (
	"context"

	"github.com/merchantdash/datagrid"
)

// Source yields the full record set for a grid.
type Source interface {
	Records(ctx context.Context) ([]datagrid.Record, error)
}

// Static serves a fixed record set.
type Static []datagrid.Record

func (s Static) Records(context.Context) ([]datagrid.Record, error) {
	return s, nil
}
