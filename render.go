package datagrid

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// CellKind names one of the fixed cell renderers.
type CellKind string

const (
	CellText      CellKind = "text"
	CellBadge     CellKind = "badge"
	CellDate      CellKind = "date"
	CellSplitDate CellKind = "split_date"
	CellAmount    CellKind = "amount"
	CellMono      CellKind = "mono"
)

// CellRenderer declares how a column's value is turned into display text.
//
// Params understood per kind:
//
//	badge:  variant
//	date:   layout (Go time layout, default "Jan 2, 2006")
//	amount: currency, currency_field, format (humanize format, default "#,###.##")
type CellRenderer struct {
	Kind   CellKind          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Cell is one rendered cell.
type Cell struct {
	ColumnID string          `json:"column"`
	Text     string          `json:"text"`
	Kind     CellKind        `json:"kind"`
	Variant  string          `json:"variant,omitempty"`
	Sticky   *StickyPosition `json:"sticky,omitempty"`
}

// RenderCell interprets the column's renderer against a record. Unknown kinds
// render as plain text.
func RenderCell(col Column, r Record) Cell {
	value := col.Value(r)
	kind := col.Cell.Kind
	if kind == "" {
		kind = CellText
	}
	param := func(key string) string { return col.Cell.Params[key] }

	cell := Cell{ColumnID: col.ID, Kind: kind}
	switch kind {
	case CellBadge:
		cell.Text = stringify(value)
		cell.Variant = param("variant")
		if cell.Variant == "" {
			cell.Variant = "secondary"
		}
	case CellDate:
		layout := param("layout")
		if layout == "" {
			layout = "Jan 2, 2006"
		}
		if t, ok := toTime(value); ok {
			cell.Text = t.Format(layout)
		} else {
			cell.Text = stringify(value)
		}
	case CellSplitDate:
		if t, ok := toTime(value); ok {
			cell.Text = t.Format("Jan 2, 2006") + "\n" + t.Format("3:04:05 PM")
		} else {
			cell.Text = stringify(value)
		}
	case CellAmount:
		cell.Text = renderAmount(value, r, col.Cell.Params)
	case CellMono:
		cell.Text = stringify(value)
	default:
		cell.Kind = CellText
		cell.Text = stringify(value)
	}
	return cell
}

func renderAmount(value any, r Record, params map[string]string) string {
	text := stringify(value)
	if n, ok := toNumber(value); ok {
		format := params["format"]
		if format == "" {
			format = "#,###.##"
		}
		text = humanize.FormatFloat(format, n)
	}
	currency := params["currency"]
	if field := params["currency_field"]; field != "" {
		if c := stringify(r[field]); c != "" {
			currency = c
		}
	}
	if currency == "" {
		return text
	}
	return strings.TrimSpace(currency + " " + text)
}
