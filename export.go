package datagrid

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// ExportFormat is a clipboard-style row export format.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportText ExportFormat = "text"
)

// ExportRow serialises one record using the column order. Columns read through
// their accessor, so derived fields are exported as displayed values.
func ExportRow(r Record, columns []Column, format ExportFormat) (string, error) {
	cols := newColumnSet(columns).list
	switch format {
	case ExportJSON:
		obj := make(map[string]any, len(cols))
		for _, c := range cols {
			obj[c.ID] = c.Value(r)
		}
		b, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", fmt.Errorf("datagrid: export json: %w", err)
		}
		return string(b), nil

	case ExportCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		header := make([]string, len(cols))
		values := make([]string, len(cols))
		for i, c := range cols {
			header[i] = c.ID
			values[i] = stringify(c.Value(r))
		}
		_ = w.Write(header)
		_ = w.Write(values)
		w.Flush()
		if err := w.Error(); err != nil {
			return "", fmt.Errorf("datagrid: export csv: %w", err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil

	case ExportText:
		lines := make([]string, len(cols))
		for i, c := range cols {
			lines[i] = c.ID + ": " + stringify(c.Value(r))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("datagrid: unsupported export format %q", format)
}
