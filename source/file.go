package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/merchantdash/datagrid"
)

// File reads records from a JSON or YAML document holding a list of objects.
type File struct {
	Path string
}

func (f File) Records(context.Context) ([]datagrid.Record, error) {
	return LoadFile(f.Path)
}

// LoadFile reads a record list, choosing the decoder by file extension.
func LoadFile(path string) ([]datagrid.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	var records []datagrid.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = DecodeYAML(data)
	default:
		records, err = DecodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return records, nil
}

// DecodeJSON decodes a JSON array of objects. Numbers stay float64.
func DecodeJSON(data []byte) ([]datagrid.Record, error) {
	var records []datagrid.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return records, nil
}

// DecodeYAML decodes a YAML sequence of mappings.
func DecodeYAML(data []byte) ([]datagrid.Record, error) {
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	records := make([]datagrid.Record, len(raw))
	for i, r := range raw {
		records[i] = datagrid.Record(r)
	}
	return records, nil
}
