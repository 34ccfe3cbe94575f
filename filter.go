package datagrid

import (
	"reflect"
	"slices"
	"strings"
	"time"
)

// FilterKind selects how a column filter value is interpreted.
type FilterKind string

const (
	FilterText        FilterKind = "text"
	FilterSelect      FilterKind = "select"
	FilterMultiSelect FilterKind = "multiselect"
	FilterDateRange   FilterKind = "dateRange"
	FilterNumberRange FilterKind = "numberRange"
	FilterBoolean     FilterKind = "boolean"
	FilterCustom      FilterKind = "custom"
)

// FilterOption is one choice of a select or multiselect filter.
type FilterOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Filter declares a user-facing filter control bound to a column.
type Filter struct {
	ColumnID    string         `json:"column" yaml:"column"`
	Kind        FilterKind     `json:"type" yaml:"type"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []FilterOption `json:"options,omitempty" yaml:"options,omitempty"`

	// Predicate backs FilterCustom. It receives the record and the stored value.
	Predicate func(r Record, value any) bool `json:"-" yaml:"-"`
}

// DateRange bounds are inclusive; a nil bound is open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// NumberRange bounds are inclusive; a nil bound is open.
type NumberRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FilterState holds the active per-column filters and the global search text.
// Empty values are never stored.
type FilterState struct {
	Global  string
	Columns map[string]any
}

// Active returns the number of active filters, counting the global search as one.
func (s FilterState) Active() int {
	n := len(s.Columns)
	if s.Global != "" {
		n++
	}
	return n
}

// normalizeFilterValue converts v into the canonical shape for kind. The second
// result is false when v is empty or malformed, in which case the filter is absent.
func normalizeFilterValue(kind FilterKind, v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch kind {
	case FilterText, FilterSelect:
		s, ok := v.(string)
		if !ok {
			if _, isTuple := tupleValues(v); isTuple {
				return nil, false
			}
			s = stringify(v)
		}
		if s == "" {
			return nil, false
		}
		return s, true

	case FilterMultiSelect:
		var out []string
		if s, ok := v.(string); ok {
			out = []string{s}
		} else {
			items, ok := tupleValues(v)
			if !ok {
				return nil, false
			}
			for _, item := range items {
				if item = emptyToNil(item); item != nil {
					out = append(out, stringify(item))
				}
			}
		}
		out = slices.DeleteFunc(out, func(s string) bool { return s == "" })
		if len(out) == 0 {
			return nil, false
		}
		return out, true

	case FilterNumberRange:
		var r NumberRange
		switch val := v.(type) {
		case NumberRange:
			r = val
		case *NumberRange:
			if val == nil {
				return nil, false
			}
			r = *val
		default:
			lo, hi, ok := rangePair(v)
			if !ok {
				return nil, false
			}
			r.Min = numberBound(lo)
			r.Max = numberBound(hi)
			if (lo != nil && r.Min == nil) || (hi != nil && r.Max == nil) {
				return nil, false
			}
		}
		if r.Min == nil && r.Max == nil {
			return nil, false
		}
		return r, true

	case FilterDateRange:
		var r DateRange
		switch val := v.(type) {
		case DateRange:
			r = val
		case *DateRange:
			if val == nil {
				return nil, false
			}
			r = *val
		default:
			lo, hi, ok := rangePair(v)
			if !ok {
				return nil, false
			}
			r.Start = dateBound(lo)
			r.End = dateBound(hi)
			if (lo != nil && r.Start == nil) || (hi != nil && r.End == nil) {
				return nil, false
			}
		}
		if r.Start == nil && r.End == nil {
			return nil, false
		}
		return r, true

	case FilterBoolean:
		b, ok := toBool(v)
		if !ok {
			return nil, false
		}
		return b, true

	case FilterCustom:
		switch val := v.(type) {
		case string:
			if val == "" {
				return nil, false
			}
		case []any:
			if len(val) == 0 {
				return nil, false
			}
		case []string:
			if len(val) == 0 {
				return nil, false
			}
		}
		return v, true
	}
	return nil, false
}

// tupleValues lists the elements of a slice or array of any element type.
// Byte slices are text, not tuples.
func tupleValues(v any) ([]any, bool) {
	if vals, ok := v.([]any); ok {
		return vals, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// rangePair splits a loose range value into its lower and upper bounds.
func rangePair(v any) (any, any, bool) {
	vals, ok := tupleValues(v)
	if !ok {
		return nil, nil, false
	}
	return pair(vals)
}

func pair(vals []any) (any, any, bool) {
	switch len(vals) {
	case 0:
		return nil, nil, true
	case 1:
		return emptyToNil(vals[0]), nil, true
	case 2:
		return emptyToNil(vals[0]), emptyToNil(vals[1]), true
	}
	return nil, nil, false
}

func emptyToNil(v any) any {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return v
}

func numberBound(v any) *float64 {
	if v == nil {
		return nil
	}
	f, ok := toNumber(v)
	if !ok {
		return nil
	}
	return &f
}

func dateBound(v any) *time.Time {
	if v == nil {
		return nil
	}
	t, ok := toTime(v)
	if !ok {
		return nil
	}
	return &t
}

// ApplyFilters returns the records passing every active column filter and the
// global search. Input order is preserved and no record is copied.
// searchable restricts the global search to those column ids when non-empty.
func ApplyFilters(records []Record, columns []Column, filters []Filter, state FilterState, searchable []string) []Record {
	set := newColumnSet(columns)
	return filterRows(records, func(r Record) Record { return r }, set, indexFilters(filters), state, searchable)
}

func indexFilters(filters []Filter) map[string]Filter {
	out := make(map[string]Filter, len(filters))
	for _, f := range filters {
		if f.ColumnID == "" {
			continue
		}
		if _, dup := out[f.ColumnID]; !dup {
			out[f.ColumnID] = f
		}
	}
	return out
}

type activeFilter struct {
	column Column
	filter Filter
	value  any
}

func filterRows[T any](items []T, rec func(T) Record, cols columnSet, defs map[string]Filter, state FilterState, searchable []string) []T {
	var active []activeFilter
	for id, raw := range state.Columns {
		def, ok := defs[id]
		if !ok {
			continue
		}
		col, ok := cols.get(id)
		if !ok {
			continue
		}
		value, ok := normalizeFilterValue(def.Kind, raw)
		if !ok {
			continue
		}
		active = append(active, activeFilter{column: col, filter: def, value: value})
	}

	needle := strings.ToLower(strings.TrimSpace(state.Global))
	var searchCols []Column
	if needle != "" {
		searchCols = searchColumns(cols, searchable)
	}

	if len(active) == 0 && needle == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		r := rec(item)
		if !matchesAll(r, active) {
			continue
		}
		if needle != "" && !matchesGlobal(r, searchCols, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func searchColumns(cols columnSet, searchable []string) []Column {
	if len(searchable) == 0 {
		return cols.list
	}
	out := make([]Column, 0, len(searchable))
	for _, id := range searchable {
		if c, ok := cols.get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func matchesAll(r Record, active []activeFilter) bool {
	for _, f := range active {
		if !matchFilter(r, f) {
			return false
		}
	}
	return true
}

func matchesGlobal(r Record, cols []Column, needle string) bool {
	for _, c := range cols {
		if strings.Contains(strings.ToLower(stringify(c.Value(r))), needle) {
			return true
		}
	}
	return false
}

func matchFilter(r Record, f activeFilter) bool {
	cell := f.column.Value(r)
	switch f.filter.Kind {
	case FilterText:
		return strings.Contains(strings.ToLower(stringify(cell)), strings.ToLower(f.value.(string)))

	case FilterSelect:
		return stringify(cell) == f.value.(string)

	case FilterMultiSelect:
		return slices.Contains(f.value.([]string), stringify(cell))

	case FilterNumberRange:
		rng := f.value.(NumberRange)
		n, ok := toNumber(cell)
		if !ok {
			return false
		}
		if rng.Min != nil && n < *rng.Min {
			return false
		}
		if rng.Max != nil && n > *rng.Max {
			return false
		}
		return true

	case FilterDateRange:
		rng := f.value.(DateRange)
		t, ok := toTime(cell)
		if !ok {
			return false
		}
		if rng.Start != nil && t.Before(*rng.Start) {
			return false
		}
		if rng.End != nil && t.After(*rng.End) {
			return false
		}
		return true

	case FilterBoolean:
		b, ok := toBool(cell)
		return ok && b == f.value.(bool)

	case FilterCustom:
		if f.filter.Predicate == nil {
			return true
		}
		return f.filter.Predicate(r, f.value)
	}
	return true
}
