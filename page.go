package datagrid

// HeaderCell describes one visible column header.
type HeaderCell struct {
	ColumnID string          `json:"id"`
	Header   string          `json:"header"`
	Width    int             `json:"width,omitempty"`
	Sortable bool            `json:"sortable"`
	Sorted   SortDirection   `json:"sorted,omitempty"`
	Hideable bool            `json:"hideable"`
	Sticky   *StickyPosition `json:"sticky,omitempty"`
}

// RenderedRow is one record on the current page.
type RenderedRow struct {
	ID         string `json:"id"`
	Record     Record `json:"record"`
	Cells      []Cell `json:"cells"`
	Expandable bool   `json:"expandable"`
	Expanded   bool   `json:"expanded"`

	// SubRow is set when the row's detail content is shown beneath it; it
	// spans SubRowSpan columns.
	SubRow     *string `json:"subRow,omitempty"`
	SubRowSpan int     `json:"subRowSpan,omitempty"`
}

// Page is everything a renderer needs to draw the grid.
type Page struct {
	Columns       []HeaderCell  `json:"columns"`
	Rows          []RenderedRow `json:"rows"`
	Pagination    Pagination    `json:"pagination"`
	ActiveFilters int           `json:"activeFilters"`
	Search        string        `json:"search"`
	View          View          `json:"view"`
	Totals        []Total       `json:"totals,omitempty"`

	// Empty is set when no record passes the filters; the body then shows a
	// single placeholder row with EmptyMessage.
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

// Page filters, sorts and slices the records and renders the current page.
// The page index is clamped before slicing.
func (g *Grid) Page() Page {
	filtered := g.filtered()
	g.page = g.page.Clamp(len(filtered))
	ordered := g.sorted(filtered)

	pageRows := ordered
	pageSize := g.page.PageSize
	pageCount := PageCount(len(ordered), pageSize)
	if g.opts.Features.Pagination {
		start, end := g.page.Bounds(len(ordered))
		pageRows = ordered[start:end]
	} else {
		pageSize = len(ordered)
		pageCount = 1
	}

	visible := g.VisibleColumns()
	headers := make([]HeaderCell, len(visible))
	for i, c := range visible {
		h := HeaderCell{
			ColumnID: c.ID,
			Header:   c.Header,
			Width:    c.Width,
			Sortable: c.Sortable && g.opts.Features.Sorting,
			Sorted:   g.sorting.Direction(c.ID),
			Hideable: c.Hideable,
		}
		if pos, ok := g.Sticky(c.ID); ok {
			h.Sticky = &pos
			if h.Width == 0 {
				h.Width = g.stickyWidth(c.ID)
			}
		}
		headers[i] = h
	}

	rows := make([]RenderedRow, len(pageRows))
	for i, r := range pageRows {
		rows[i] = g.renderRow(r, visible)
	}

	p := Page{
		Columns: headers,
		Rows:    rows,
		Pagination: Pagination{
			PageIndex:       g.page.PageIndex,
			PageCount:       pageCount,
			PageSize:        pageSize,
			TotalRows:       len(ordered),
			PageSizeOptions: g.opts.PageSizeOptions,
			CanPrevious:     g.opts.Features.Pagination && g.page.PageIndex > 0,
			CanNext:         g.opts.Features.Pagination && g.page.PageIndex < pageCount-1,
		},
		ActiveFilters: g.ActiveFilterCount(),
		Search:        g.filter.Global,
		View:          g.vis.view,
		Totals:        totals(recordsOf(filtered), g.cols.list),
	}
	if len(ordered) == 0 {
		p.Empty = true
		p.EmptyMessage = g.opts.EmptyMessage
	}
	return p
}

func (g *Grid) renderRow(r row, visible []Column) RenderedRow {
	out := RenderedRow{
		ID:     r.id,
		Record: r.record,
		Cells:  make([]Cell, len(visible)),
	}
	for i, c := range visible {
		cell := RenderCell(c, r.record)
		if pos, ok := g.Sticky(c.ID); ok {
			cell.Sticky = &pos
		}
		out.Cells[i] = cell
	}
	if g.opts.Features.Expanding {
		out.Expandable = g.CanExpand(r.record)
		out.Expanded = g.expanded.Has(r.id)
		if out.Expanded && g.opts.SubRow != nil {
			content := g.opts.SubRow(r.record)
			out.SubRow = &content
			out.SubRowSpan = len(visible)
		}
	}
	return out
}

func (g *Grid) stickyWidth(columnID string) int {
	for _, s := range g.opts.StickyColumns {
		if s.ID == columnID {
			return s.width()
		}
	}
	return 0
}

func recordsOf(rows []row) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.record
	}
	return out
}
