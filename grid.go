package datagrid

import (
	"maps"
	"slices"
	"strconv"
)

// DefaultEmptyMessage is shown in the placeholder row when no record matches.
const DefaultEmptyMessage = "No results found."

// Features toggles the grid's engines. The zero value disables everything;
// use DefaultFeatures for the usual configuration.
type Features struct {
	Sorting          bool `json:"sorting" yaml:"sorting"`
	Filtering        bool `json:"filtering" yaml:"filtering"`
	GlobalSearch     bool `json:"global_search" yaml:"global_search"`
	Pagination       bool `json:"pagination" yaml:"pagination"`
	ColumnVisibility bool `json:"column_visibility" yaml:"column_visibility"`
	Expanding        bool `json:"expanding" yaml:"expanding"`
	StickyColumns    bool `json:"sticky_columns" yaml:"sticky_columns"`
}

// DefaultFeatures enables sorting, filtering, search, pagination and column
// visibility. Expansion and sticky columns are opt-in.
func DefaultFeatures() Features {
	return Features{
		Sorting:          true,
		Filtering:        true,
		GlobalSearch:     true,
		Pagination:       true,
		ColumnVisibility: true,
	}
}

// Options configures a Grid.
type Options struct {
	Features        Features
	Filters         []Filter
	Presets         []Preset
	DefaultView     string
	PageSize        int
	PageSizeOptions []int
	StickyColumns   []StickyColumn
	Searchable      []string
	EmptyMessage    string

	// RowID derives a stable row identity. It defaults to the record's index
	// in the slice handed to New or SetRecords.
	RowID      func(r Record, index int) string
	CanExpand  ExpandPredicate
	SubRow     SubRow
	OnRowClick func(r Record)
}

type row struct {
	id     string
	record Record
}

// Grid holds the in-memory state of one data grid instance. It is not safe
// for concurrent use; callers serialise access per instance.
type Grid struct {
	opts    Options
	cols    columnSet
	filters map[string]Filter
	sticky  map[string]StickyPosition

	rows     []row
	byID     map[string]Record
	filter   FilterState
	sorting  SortState
	page     PaginationState
	vis      visibility
	expanded ExpandedState
}

// New builds a grid over the given columns and records.
func New(columns []Column, records []Record, opts Options) *Grid {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if len(opts.PageSizeOptions) == 0 {
		opts.PageSizeOptions = slices.Clone(DefaultPageSizeOptions)
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = DefaultEmptyMessage
	}
	if opts.RowID == nil {
		opts.RowID = func(_ Record, i int) string { return strconv.Itoa(i) }
	}

	g := &Grid{
		opts:     opts,
		cols:     newColumnSet(columns),
		filters:  indexFilters(opts.Filters),
		sticky:   stickyLayout(opts.StickyColumns),
		filter:   FilterState{Columns: map[string]any{}},
		page:     PaginationState{PageSize: opts.PageSize},
		vis:      newVisibility(opts.Presets),
		expanded: ExpandedState{},
	}
	g.vis.apply(opts.DefaultView, g.cols)
	g.SetRecords(records)
	return g
}

// SetRecords replaces the data set. Filter, sort, visibility and expansion
// state are kept; the page index is clamped to the new row count.
func (g *Grid) SetRecords(records []Record) {
	g.rows = make([]row, len(records))
	g.byID = make(map[string]Record, len(records))
	for i, r := range records {
		id := g.opts.RowID(r, i)
		g.rows[i] = row{id: id, record: r}
		g.byID[id] = r
	}
	g.clamp()
}

// Columns returns the column descriptors in declaration order.
func (g *Grid) Columns() []Column {
	return slices.Clone(g.cols.list)
}

// Filters returns the filter descriptors.
func (g *Grid) Filters() []Filter {
	return slices.Clone(g.opts.Filters)
}

// Presets returns the configured view presets in declaration order.
func (g *Grid) Presets() []Preset {
	out := make([]Preset, 0, len(g.vis.presets))
	seen := make(map[string]bool, len(g.vis.presets))
	for _, p := range g.opts.Presets {
		if p.Key == "" || seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		out = append(out, p)
	}
	return out
}

// --- filtering ---

// SetGlobalFilter sets the free-text search applied across columns.
func (g *Grid) SetGlobalFilter(text string) {
	if !g.opts.Features.GlobalSearch {
		return
	}
	g.filter.Global = text
	g.clamp()
}

// SetFilter sets the value of a column filter. Empty or malformed values, and
// columns without a filter descriptor, leave no entry behind.
func (g *Grid) SetFilter(columnID string, value any) {
	if !g.opts.Features.Filtering {
		return
	}
	next := maps.Clone(g.filter.Columns)
	delete(next, columnID)
	if def, ok := g.filters[columnID]; ok {
		if v, ok := normalizeFilterValue(def.Kind, value); ok {
			next[columnID] = v
		}
	}
	g.filter.Columns = next
	g.clamp()
}

// ClearFilters drops every column filter and the global search.
func (g *Grid) ClearFilters() {
	g.filter = FilterState{Columns: map[string]any{}}
	g.clamp()
}

// FilterState returns a copy of the current filter state.
func (g *Grid) FilterState() FilterState {
	return FilterState{Global: g.filter.Global, Columns: maps.Clone(g.filter.Columns)}
}

// ActiveFilterCount is the badge count: stored column filters plus the global search.
func (g *Grid) ActiveFilterCount() int {
	return g.filter.Active()
}

// --- sorting ---

// ToggleSorting cycles the column through none, ascending and descending and
// drops any other sort key. Non-sortable columns are ignored.
func (g *Grid) ToggleSorting(columnID string) {
	if !g.sortable(columnID) {
		return
	}
	g.sorting = g.sorting.Toggle(columnID)
}

// ToggleSortingMulti cycles the column while keeping other sort keys.
func (g *Grid) ToggleSortingMulti(columnID string) {
	if !g.sortable(columnID) {
		return
	}
	g.sorting = g.sorting.ToggleMulti(columnID)
}

// SetSorting replaces the sort state.
func (g *Grid) SetSorting(state SortState) {
	g.sorting = slices.Clone(state)
}

func (g *Grid) Sorting() SortState {
	return slices.Clone(g.sorting)
}

func (g *Grid) sortable(columnID string) bool {
	if !g.opts.Features.Sorting {
		return false
	}
	c, ok := g.cols.get(columnID)
	return ok && c.Sortable
}

// --- pagination ---

func (g *Grid) SetPageSize(size int) {
	g.page = g.page.WithPageSize(size)
}

func (g *Grid) SetPageIndex(index int) {
	g.page = g.page.WithPageIndex(index, g.filteredCount())
}

func (g *Grid) FirstPage() { g.page = g.page.First() }

func (g *Grid) PreviousPage() { g.page = g.page.Previous(g.filteredCount()) }

func (g *Grid) NextPage() { g.page = g.page.Next(g.filteredCount()) }

func (g *Grid) LastPage() { g.page = g.page.Last(g.filteredCount()) }

func (g *Grid) PaginationState() PaginationState { return g.page }

// --- visibility ---

// SetColumnVisible shows or hides a column and marks the view custom. Hiding a
// non-hideable column is ignored.
func (g *Grid) SetColumnVisible(columnID string, visible bool) {
	if !g.opts.Features.ColumnVisibility {
		return
	}
	c, ok := g.cols.get(columnID)
	if !ok {
		return
	}
	g.vis.set(c, visible)
}

// ApplyPreset replaces the visibility state with the named preset. Unknown
// names are ignored.
func (g *Grid) ApplyPreset(key string) {
	g.vis.apply(key, g.cols)
}

func (g *Grid) IsColumnVisible(columnID string) bool {
	c, ok := g.cols.get(columnID)
	return ok && g.vis.visible(c)
}

func (g *Grid) Visibility() VisibilityState {
	return maps.Clone(g.vis.state)
}

// View returns the preset the layout is attributed to, or Custom.
func (g *Grid) View() View {
	return g.vis.view
}

// VisibleColumns lists shown columns in declaration order.
func (g *Grid) VisibleColumns() []Column {
	out := make([]Column, 0, len(g.cols.list))
	for _, c := range g.cols.list {
		if g.vis.visible(c) {
			out = append(out, c)
		}
	}
	return out
}

// --- expansion ---

// ToggleExpanded flips the row's membership in the expanded set.
func (g *Grid) ToggleExpanded(rowID string) {
	g.expanded = g.expanded.Toggle(rowID)
}

func (g *Grid) IsExpanded(rowID string) bool {
	return g.expanded.Has(rowID)
}

func (g *Grid) ResetExpanded() {
	g.expanded = ExpandedState{}
}

// CanExpand reports whether the record offers a detail row.
func (g *Grid) CanExpand(r Record) bool {
	return g.opts.CanExpand != nil && g.opts.CanExpand(r)
}

// --- sticky columns ---

// Sticky returns the pinned position of a column when sticky columns are enabled.
func (g *Grid) Sticky(columnID string) (StickyPosition, bool) {
	if !g.opts.Features.StickyColumns {
		return StickyPosition{}, false
	}
	pos, ok := g.sticky[columnID]
	return pos, ok
}

// SetStickyColumns replaces the sticky specs and recomputes offsets.
func (g *Grid) SetStickyColumns(specs []StickyColumn) {
	g.opts.StickyColumns = slices.Clone(specs)
	g.sticky = stickyLayout(g.opts.StickyColumns)
}

// --- rows ---

// ClickRow invokes the row-click callback for the identified row.
func (g *Grid) ClickRow(rowID string) bool {
	r, ok := g.byID[rowID]
	if !ok {
		return false
	}
	if g.opts.OnRowClick != nil {
		g.opts.OnRowClick(r)
	}
	return true
}

// Record looks up a record by row id.
func (g *Grid) Record(rowID string) (Record, bool) {
	r, ok := g.byID[rowID]
	return r, ok
}

func rowRecord(r row) Record { return r.record }

func (g *Grid) filtered() []row {
	state := g.filter
	if !g.opts.Features.Filtering {
		state.Columns = nil
	}
	if !g.opts.Features.GlobalSearch {
		state.Global = ""
	}
	return filterRows(g.rows, rowRecord, g.cols, g.filters, state, g.opts.Searchable)
}

func (g *Grid) sorted(rows []row) []row {
	if !g.opts.Features.Sorting {
		return rows
	}
	return sortRows(rows, rowRecord, g.cols, g.sorting)
}

func (g *Grid) filteredCount() int {
	return len(g.filtered())
}

func (g *Grid) clamp() {
	g.page = g.page.Clamp(g.filteredCount())
}
