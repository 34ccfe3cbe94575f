package datagrid

import "maps"

// ExpandedState is the set of expanded row ids.
type ExpandedState map[string]bool

// Toggle returns a copy with rowID's membership flipped.
func (e ExpandedState) Toggle(rowID string) ExpandedState {
	next := maps.Clone(e)
	if next == nil {
		next = ExpandedState{}
	}
	if next[rowID] {
		delete(next, rowID)
	} else {
		next[rowID] = true
	}
	return next
}

func (e ExpandedState) Has(rowID string) bool {
	return e[rowID]
}

// SubRow renders the detail content shown beneath an expanded row.
type SubRow func(r Record) string

// ExpandPredicate decides whether a row offers expansion.
type ExpandPredicate func(r Record) bool
