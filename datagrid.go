package datagrid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LOVItem is one entry of a list of values feeding a select-like filter.
type LOVItem struct {
	Value  interface{}       `json:"value"`
	Labels map[string]string `json:"labels,omitempty"`
	Label  string            `json:"label,omitempty"`
}

// Catalog is the declarative description of a grid: its columns, filters,
// view presets and defaults.
type Catalog struct {
	Version  string         `json:"version"`
	Title    string         `json:"title,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Datagrid DatagridConfig `json:"datagrid,omitempty"`
	Objects  []ObjectDef    `json:"objects"`
}

type DatagridConfig struct {
	Defaults        DatagridDefaults             `json:"defaults"`
	Features        *Features                    `json:"features,omitempty"`
	PageSizeOptions []int                        `json:"page_size_options,omitempty"`
	LOVs            map[string][]LOVItem         `json:"lovs,omitempty"`
	Filters         []FilterDef                  `json:"filters,omitempty"`
	Columns         map[string]DatagridColumnDef `json:"columns,omitempty"`
	Searchable      []string                     `json:"searchable_columns,omitempty"`
	Presets         []PresetDef                  `json:"presets,omitempty"`
	StickyColumns   []StickyColumn               `json:"sticky_columns,omitempty"`
	Expansion       *ExpansionDef                `json:"expansion,omitempty"`
	EmptyMessage    string                       `json:"empty_message,omitempty"`
}

type DatagridDefaults struct {
	PageSize      int                    `json:"page_size"`
	SortColumn    string                 `json:"sort_column"`
	SortDirection string                 `json:"sort_direction"`
	Filters       map[string]interface{} `json:"filters"`
	Search        string                 `json:"search"`
	View          string                 `json:"view"`
}

type FilterDef struct {
	Column      string            `json:"column"`
	Type        string            `json:"type"` // text, select, multiselect, dateRange, numberRange, boolean
	Label       string            `json:"label,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Options     []LOVItem         `json:"options,omitempty"`
}

type DatagridColumnDef struct {
	Visible *bool             `json:"visible,omitempty"`
	Labels  map[string]string `json:"labels"`
}

type PresetDef struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Labels      map[string]string `json:"labels,omitempty"`
	Description string            `json:"description,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Columns     map[string]bool   `json:"columns"`
}

// ExpansionDef enables detail rows listing the given fields as "key: value" lines.
type ExpansionDef struct {
	Fields []string `json:"fields"`
}

type ObjectDef struct {
	Name    string      `json:"name"`
	RowID   string      `json:"row_id,omitempty"`
	Columns []ColumnDef `json:"columns"`
}

type ColumnDef struct {
	Name      string            `json:"name"`
	Accessor  string            `json:"accessor,omitempty"`
	Type      string            `json:"type"`
	Labels    map[string]string `json:"labels"`
	Header    string            `json:"header,omitempty"`
	Sortable  *bool             `json:"sortable,omitempty"`
	Hideable  *bool             `json:"hideable,omitempty"`
	Width     int               `json:"width,omitempty"`
	Cell      CellRenderer      `json:"cell,omitempty"`
	Aggregate AggregateKind     `json:"aggregate,omitempty"`
}

// LoadCatalog reads a JSON or YAML catalog (by file extension), validates it
// against the catalog schema and decodes it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("datagrid: read catalog %s: %w", path, err)
	}
	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	cat, err := DecodeCatalog(data, format)
	if err != nil {
		return nil, fmt.Errorf("datagrid: catalog %s: %w", path, err)
	}
	return cat, nil
}

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DecodeCatalog validates and decodes catalog bytes. YAML documents are
// normalised to JSON first so both formats share one schema and one set of tags.
func DecodeCatalog(data []byte, format Format) (*Catalog, error) {
	if format == FormatYAML {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalize yaml: %w", err)
		}
		data = converted
	}
	if err := ValidateCatalog(data); err != nil {
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cat.Objects) == 0 {
		return nil, fmt.Errorf("no objects found in catalog")
	}
	return &cat, nil
}

// Columns resolves the first object's columns with labels for lang.
func (cat *Catalog) Columns(lang string) []Column {
	if len(cat.Objects) == 0 {
		return nil
	}
	obj := cat.Objects[0]
	cols := make([]Column, 0, len(obj.Columns))
	for _, def := range obj.Columns {
		label := def.Header
		if l := localized(def.Labels, lang); l != "" {
			label = l
		}
		if override, ok := cat.Datagrid.Columns[def.Name]; ok {
			if l := localized(override.Labels, lang); l != "" {
				label = l
			}
		}
		if label == "" {
			label = DefaultHeader(def.Name)
		}
		cols = append(cols, Column{
			ID:          def.Name,
			AccessorKey: def.Accessor,
			Header:      label,
			Type:        strings.ToLower(def.Type),
			Sortable:    boolOr(def.Sortable, true),
			Hideable:    boolOr(def.Hideable, true),
			Width:       def.Width,
			Cell:        def.Cell,
			Aggregate:   def.Aggregate,
		})
	}
	return cols
}

// Options resolves the grid options described by the catalog.
func (cat *Catalog) Options(lang string) Options {
	cfg := cat.Datagrid
	opts := Options{
		Features:        DefaultFeatures(),
		PageSize:        cfg.Defaults.PageSize,
		PageSizeOptions: cfg.PageSizeOptions,
		StickyColumns:   cfg.StickyColumns,
		Searchable:      cfg.Searchable,
		DefaultView:     cfg.Defaults.View,
		EmptyMessage:    cfg.EmptyMessage,
	}
	if cfg.Features != nil {
		opts.Features = *cfg.Features
	}
	if len(cfg.StickyColumns) > 0 && cfg.Features == nil {
		opts.Features.StickyColumns = true
	}

	for _, fd := range cfg.Filters {
		f := Filter{
			ColumnID:    fd.Column,
			Kind:        FilterKind(fd.Type),
			Label:       fd.Label,
			Placeholder: fd.Placeholder,
		}
		if l := localized(fd.Labels, lang); l != "" {
			f.Label = l
		}
		if f.Label == "" {
			f.Label = DefaultHeader(fd.Column)
		}
		items := fd.Options
		// catalog-wide LOVs precede inline options
		if global, ok := cfg.LOVs[fd.Column]; ok {
			items = append(append([]LOVItem{}, global...), items...)
		}
		for _, item := range items {
			item = processLovItem(item, lang)
			value := stringify(item.Value)
			label := item.Label
			if label == "" {
				label = value
			}
			f.Options = append(f.Options, FilterOption{Label: label, Value: value})
		}
		opts.Filters = append(opts.Filters, f)
	}

	for _, pd := range cfg.Presets {
		name := pd.Name
		if l := localized(pd.Labels, lang); l != "" {
			name = l
		}
		opts.Presets = append(opts.Presets, Preset{
			Key:         pd.Key,
			Name:        name,
			Description: pd.Description,
			Icon:        ParseIcon(pd.Icon),
			Columns:     VisibilityState(pd.Columns),
		})
	}

	if len(cat.Objects) > 0 && cat.Objects[0].RowID != "" {
		field := cat.Objects[0].RowID
		opts.RowID = func(r Record, i int) string {
			if id := stringify(r[field]); id != "" {
				return id
			}
			return fmt.Sprintf("%d", i)
		}
	}

	if cfg.Expansion != nil && len(cfg.Expansion.Fields) > 0 {
		opts.Features.Expanding = true
		fields := make([]Column, 0, len(cfg.Expansion.Fields))
		for _, f := range cfg.Expansion.Fields {
			fields = append(fields, NewColumn(f))
		}
		opts.CanExpand = func(Record) bool { return true }
		opts.SubRow = func(r Record) string {
			text, _ := ExportRow(r, fields, ExportText)
			return text
		}
	}
	return opts
}

// NewGrid builds a grid over records and applies the catalog defaults
// (initial column overrides, sort, filters and search).
func (cat *Catalog) NewGrid(records []Record, lang string) *Grid {
	cols := cat.Columns(lang)
	g := New(cols, records, cat.Options(lang))
	cfg := cat.Datagrid

	if g.View().IsCustom() {
		for id, override := range cfg.Columns {
			if override.Visible != nil && !*override.Visible {
				if c, ok := g.cols.get(id); ok && c.Hideable {
					g.vis.state[id] = false
				}
			}
		}
	}
	if cfg.Defaults.SortColumn != "" {
		g.ToggleSorting(cfg.Defaults.SortColumn)
		if strings.EqualFold(cfg.Defaults.SortDirection, "desc") {
			g.ToggleSorting(cfg.Defaults.SortColumn)
		}
	}
	for id, v := range cfg.Defaults.Filters {
		g.SetFilter(id, v)
	}
	if cfg.Defaults.Search != "" {
		g.SetGlobalFilter(cfg.Defaults.Search)
	}
	return g
}

func processLovItem(item LOVItem, lang string) LOVItem {
	li := LOVItem{
		Value:  item.Value,
		Labels: item.Labels,
		Label:  item.Label,
	}
	if l := localized(item.Labels, lang); l != "" {
		li.Label = l
	}
	return li
}

func localized(labels map[string]string, lang string) string {
	if l, ok := labels[lang]; ok && l != "" {
		return l
	}
	if l, ok := labels["en"]; ok {
		return l
	}
	return ""
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
