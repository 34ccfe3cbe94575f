package datagrid

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SessionCookie carries the grid session id between requests.
const SessionCookie = "grid_session"

// SessionStore resolves the grid of a browser session. With creates the
// session when sid is empty or unknown and returns the id actually used.
type SessionStore interface {
	With(sid string, fn func(g *Grid)) (string, error)
}

// Preferences is the host's key/value preference store.
type Preferences interface {
	Read(key string) (string, bool)
	Write(key, value string)
}

// PreferenceKey namespaces a preference by grid name.
func PreferenceKey(grid, name string) string {
	return "datagrid." + grid + "." + name
}

// RestoreView applies the view preset remembered for the grid, if any.
func RestoreView(g *Grid, prefs Preferences, grid string) {
	if prefs == nil {
		return
	}
	if key, ok := prefs.Read(PreferenceKey(grid, "view")); ok {
		g.ApplyPreset(key)
	}
}

// Handler serves one grid per browser session as JSON and applies the user
// actions carried in the query string.
type Handler struct {
	Name     string
	Sessions SessionStore
	Prefs    Preferences
}

func NewHandler(name string, sessions SessionStore, prefs Preferences) *Handler {
	return &Handler{Name: name, Sessions: sessions, Prefs: prefs}
}

// RequestParams are the grid actions of one request, applied in field order.
type RequestParams struct {
	Clear   bool
	Search  *string
	Filters map[string]any
	Sort    []string
	View    string
	Show    []string
	Hide    []string
	Expand  []string
	Size    int
	Page    string
	Click   string
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := h.ParseParams(r)

	sid := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		sid = c.Value
	}

	var page Page
	id, err := h.Sessions.With(sid, func(g *Grid) {
		h.Apply(g, params)
		page = g.Page()
	})
	if err != nil {
		slog.Error("Grid session unavailable", "grid", h.Name, "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if id != sid {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		slog.Error("Failed to encode grid page", "grid", h.Name, "error", err)
	}
}

// ParseParams reads the grid actions from the query string. Malformed numbers
// are dropped.
func (h *Handler) ParseParams(r *http.Request) RequestParams {
	return ParseQuery(r.URL.Query())
}

func ParseQuery(q url.Values) RequestParams {
	p := RequestParams{
		Clear:   q.Get("clear") == "1" || q.Get("clear") == "true",
		Filters: make(map[string]any),
		Sort:    q["sort"],
		View:    q.Get("view"),
		Show:    q["show"],
		Hide:    q["hide"],
		Expand:  q["expand"],
		Page:    q.Get("page"),
		Click:   q.Get("click"),
	}
	if q.Has("search") {
		s := q.Get("search")
		p.Search = &s
	}
	if s := q.Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Size = n
		}
	}

	ranges := make(map[string][]any)
	for key, values := range q {
		name, ok := strings.CutPrefix(key, "filter.")
		if !ok || name == "" {
			continue
		}
		col, bound, isRange := cutRangeSuffix(name)
		if isRange {
			pair, ok := ranges[col]
			if !ok {
				pair = []any{"", ""}
			}
			pair[bound] = values[0]
			ranges[col] = pair
			continue
		}
		if len(values) == 1 {
			p.Filters[name] = values[0]
			continue
		}
		items := make([]any, len(values))
		for i, v := range values {
			items[i] = v
		}
		p.Filters[name] = items
	}
	for col, pair := range ranges {
		p.Filters[col] = pair
	}
	return p
}

func cutRangeSuffix(name string) (string, int, bool) {
	for suffix, bound := range map[string]int{".min": 0, ".start": 0, ".max": 1, ".end": 1} {
		if col, ok := strings.CutSuffix(name, suffix); ok && col != "" {
			return col, bound, true
		}
	}
	return name, 0, false
}

// Apply performs the request's actions on g.
func (h *Handler) Apply(g *Grid, p RequestParams) {
	if p.Clear {
		g.ClearFilters()
	}
	if p.Search != nil {
		g.SetGlobalFilter(*p.Search)
	}
	for col, v := range p.Filters {
		g.SetFilter(col, v)
	}
	for _, col := range p.Sort {
		g.ToggleSorting(col)
	}
	if p.View != "" {
		g.ApplyPreset(p.View)
		if key, ok := g.View().Preset(); ok && key == p.View && h.Prefs != nil {
			h.Prefs.Write(PreferenceKey(h.Name, "view"), key)
		}
	}
	for _, col := range p.Show {
		g.SetColumnVisible(col, true)
	}
	for _, col := range p.Hide {
		g.SetColumnVisible(col, false)
	}
	for _, id := range p.Expand {
		g.ToggleExpanded(id)
	}
	if p.Size > 0 {
		g.SetPageSize(p.Size)
	}
	switch p.Page {
	case "":
	case "first":
		g.FirstPage()
	case "prev":
		g.PreviousPage()
	case "next":
		g.NextPage()
	case "last":
		g.LastPage()
	default:
		if n, err := strconv.Atoi(p.Page); err == nil {
			g.SetPageIndex(n - 1)
		}
	}
	if p.Click != "" {
		g.ClickRow(p.Click)
	}
}
