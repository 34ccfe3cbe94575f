package datagrid

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortDirection is the direction of one sort key. The zero value means unsorted.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortKey is one (column, direction) pair of a SortState.
type SortKey struct {
	ColumnID string `json:"id"`
	Desc     bool   `json:"desc"`
}

// SortState is an ordered list of sort keys; empty keeps data order.
type SortState []SortKey

// Direction reports how the column is currently sorted.
func (s SortState) Direction(columnID string) SortDirection {
	for _, k := range s {
		if k.ColumnID == columnID {
			if k.Desc {
				return SortDesc
			}
			return SortAsc
		}
	}
	return SortNone
}

// nextDirection cycles none -> asc -> desc -> none.
func nextDirection(d SortDirection) SortDirection {
	switch d {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// Toggle returns the state after a header click in single-sort mode: the
// column's direction advances and every other key is dropped.
func (s SortState) Toggle(columnID string) SortState {
	switch nextDirection(s.Direction(columnID)) {
	case SortAsc:
		return SortState{{ColumnID: columnID}}
	case SortDesc:
		return SortState{{ColumnID: columnID, Desc: true}}
	default:
		return SortState{}
	}
}

// ToggleMulti advances the column's direction while keeping other keys.
// A newly sorted column is appended as the lowest-priority key.
func (s SortState) ToggleMulti(columnID string) SortState {
	next := nextDirection(s.Direction(columnID))
	out := make(SortState, 0, len(s)+1)
	found := false
	for _, k := range s {
		if k.ColumnID != columnID {
			out = append(out, k)
			continue
		}
		found = true
		if next != SortNone {
			out = append(out, SortKey{ColumnID: columnID, Desc: next == SortDesc})
		}
	}
	if !found && next != SortNone {
		out = append(out, SortKey{ColumnID: columnID, Desc: next == SortDesc})
	}
	return out
}

// ApplySorting returns a stably sorted copy of records. Keys naming unknown or
// non-sortable columns are skipped; with no usable key the input is returned as is.
func ApplySorting(records []Record, columns []Column, state SortState) []Record {
	return sortRows(records, func(r Record) Record { return r }, newColumnSet(columns), state)
}

type sortColumn struct {
	column Column
	desc   bool
}

func sortRows[T any](items []T, rec func(T) Record, cols columnSet, state SortState) []T {
	keys := make([]sortColumn, 0, len(state))
	for _, k := range state {
		c, ok := cols.get(k.ColumnID)
		if !ok || !c.Sortable {
			continue
		}
		keys = append(keys, sortColumn{column: c, desc: k.Desc})
	}
	if len(keys) == 0 || len(items) < 2 {
		return items
	}

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		ra, rb := rec(a), rec(b)
		for _, k := range keys {
			c := compareValues(k.column.Value(ra), k.column.Value(rb))
			if c == 0 {
				continue
			}
			if k.desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

// Value ranks in ascending order. Values of different ranks compare by rank
// alone so the ordering stays total over mixed columns.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankTime
	rankText
)

type sortValue struct {
	rank int
	b    bool
	n    float64
	t    time.Time
	s    string
}

func classify(v any) sortValue {
	if v == nil {
		return sortValue{rank: rankNil}
	}
	if b, ok := v.(bool); ok {
		return sortValue{rank: rankBool, b: b}
	}
	if n, ok := toNumber(v); ok {
		return sortValue{rank: rankNumber, n: n}
	}
	if t, ok := toTime(v); ok {
		return sortValue{rank: rankTime, t: t}
	}
	return sortValue{rank: rankText, s: strings.ToLower(stringify(v))}
}

// compareValues orders two cell values: nil first, then booleans false before
// true, numbers numerically, dates chronologically, and everything else as
// case-insensitive text.
func compareValues(a, b any) int {
	va, vb := classify(a), classify(b)
	if c := cmp.Compare(va.rank, vb.rank); c != 0 {
		return c
	}
	switch va.rank {
	case rankBool:
		switch {
		case va.b == vb.b:
			return 0
		case !va.b:
			return -1
		default:
			return 1
		}
	case rankNumber:
		return cmp.Compare(va.n, vb.n)
	case rankTime:
		return va.t.Compare(vb.t)
	case rankText:
		return strings.Compare(va.s, vb.s)
	}
	return 0
}
