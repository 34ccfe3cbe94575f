package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/merchantdash/datagrid"
	"github.com/merchantdash/datagrid/source"
)

type cli struct {
	Validate validateCmd `cmd:"" help:"Validate grid catalogs against the embedded schema."`
	Render   renderCmd   `cmd:"" help:"Render one grid page as a terminal table."`
}

type validateCmd struct {
	Catalogs []string `arg:"" type:"path" help:"Catalog files (JSON or YAML)."`
}

type renderCmd struct {
	Catalog string   `required:"" type:"path" help:"Catalog file (JSON or YAML)."`
	Records string   `required:"" type:"path" help:"Record fixture file (JSON or YAML)."`
	Lang    string   `default:"en" help:"Label language."`
	Search  string   `help:"Global search text."`
	Filter  []string `help:"Column filter as column=value (repeatable; use | to separate multiselect values)."`
	Sort    []string `help:"Column to sort by; repeat the same column to sort descending."`
	View    string   `help:"View preset key."`
	Size    int      `help:"Page size."`
	Page    int      `default:"1" help:"1-based page number."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("gridctl"),
		kong.Description("Utilities for data grid catalogs."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *validateCmd) Run(_ context.Context) error {
	allValid := true
	for _, path := range cmd.Catalogs {
		name := filepath.Base(path)
		if _, err := datagrid.LoadCatalog(path); err != nil {
			allValid = false
			var verr *datagrid.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("❌ %s is invalid!\n", name)
				for _, p := range verr.Problems {
					fmt.Printf("   - %s\n", p)
				}
				continue
			}
			fmt.Printf("❌ Error validating %s: %v\n", name, err)
			continue
		}
		fmt.Printf("✅ %s is valid.\n", name)
	}
	if !allValid {
		return errors.New("gridctl: one or more catalogs are invalid")
	}
	return nil
}

func (cmd *renderCmd) Run(ctx context.Context) error {
	cat, err := datagrid.LoadCatalog(cmd.Catalog)
	if err != nil {
		return err
	}
	records, err := source.File{Path: cmd.Records}.Records(ctx)
	if err != nil {
		return err
	}

	g := cat.NewGrid(records, cmd.Lang)
	if cmd.Search != "" {
		g.SetGlobalFilter(cmd.Search)
	}
	for _, f := range cmd.Filter {
		col, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("gridctl: filter %q is not column=value", f)
		}
		if strings.Contains(value, "|") {
			parts := strings.Split(value, "|")
			items := make([]any, len(parts))
			for i, p := range parts {
				items[i] = p
			}
			g.SetFilter(col, items)
			continue
		}
		g.SetFilter(col, value)
	}
	for _, col := range cmd.Sort {
		g.ToggleSorting(col)
	}
	if cmd.View != "" {
		g.ApplyPreset(cmd.View)
	}
	if cmd.Size > 0 {
		g.SetPageSize(cmd.Size)
	}
	g.SetPageIndex(cmd.Page - 1)

	fmt.Fprintln(os.Stdout, renderPage(cat.Title, g.Page()))
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func renderPage(title string, page datagrid.Page) string {
	headers := make([]string, len(page.Columns))
	for i, h := range page.Columns {
		headers[i] = h.Header + sortMarker(h.Sorted)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	if page.Empty {
		empty := make([]string, len(headers))
		if len(empty) > 0 {
			empty[0] = page.EmptyMessage
		}
		t.Row(empty...)
	}
	for _, r := range page.Rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Text
		}
		t.Row(cells...)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("  ")
	}
	b.WriteString(dimStyle.Render("view: " + page.View.String()))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Page %s of %s · %s rows · %d active filters",
		humanize.Comma(int64(page.Pagination.PageIndex+1)),
		humanize.Comma(int64(page.Pagination.PageCount)),
		humanize.Comma(int64(page.Pagination.TotalRows)),
		page.ActiveFilters)))
	for _, total := range page.Totals {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s %s: %s", total.Kind, total.ColumnID, total.Text)))
	}
	return b.String()
}

func sortMarker(d datagrid.SortDirection) string {
	switch d {
	case datagrid.SortAsc:
		return " ↑"
	case datagrid.SortDesc:
		return " ↓"
	}
	return ""
}
