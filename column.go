package datagrid

import (
	"strings"

	"github.com/ettle/strcase"
)

// Record is one row of application data. The grid never interprets field
// semantics beyond what a Column tells it.
type Record = map[string]any

// Column describes how a single field is read, sorted and displayed.
type Column struct {
	ID          string           `json:"id" yaml:"id"`
	AccessorKey string           `json:"accessor,omitempty" yaml:"accessor,omitempty"`
	Header      string           `json:"header" yaml:"header"`
	Type        string           `json:"type,omitempty" yaml:"type,omitempty"`
	Sortable    bool             `json:"sortable" yaml:"sortable"`
	Hideable    bool             `json:"hideable" yaml:"hideable"`
	Width       int              `json:"width,omitempty" yaml:"width,omitempty"`
	Cell        CellRenderer     `json:"cell,omitempty" yaml:"cell,omitempty"`
	Aggregate   AggregateKind    `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Accessor    func(Record) any `json:"-" yaml:"-"`
}

// NewColumn returns a sortable, hideable column reading the field of the same name.
func NewColumn(id string) Column {
	return Column{
		ID:       id,
		Header:   DefaultHeader(id),
		Sortable: true,
		Hideable: true,
	}
}

// Value reads the column's value from a record.
func (c Column) Value(r Record) any {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	key := c.AccessorKey
	if key == "" {
		key = c.ID
	}
	return r[key]
}

// DefaultHeader turns a field id into an upper-case display header,
// e.g. "paymentDate" becomes "PAYMENT DATE".
func DefaultHeader(id string) string {
	return strings.ReplaceAll(strcase.ToSNAKE(id), "_", " ")
}

type columnSet struct {
	list  []Column
	index map[string]int
}

func newColumnSet(cols []Column) columnSet {
	set := columnSet{
		list:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if c.ID == "" {
			continue
		}
		// ids are unique per grid; the first declaration wins
		if _, dup := set.index[c.ID]; dup {
			continue
		}
		if c.Header == "" {
			c.Header = DefaultHeader(c.ID)
		}
		set.index[c.ID] = len(set.list)
		set.list = append(set.list, c)
	}
	return set
}

func (s columnSet) get(id string) (Column, bool) {
	i, ok := s.index[id]
	if !ok {
		return Column{}, false
	}
	return s.list[i], true
}
