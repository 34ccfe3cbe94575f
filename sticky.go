package datagrid

// DefaultStickyWidth is the width assumed for a sticky column without one.
const DefaultStickyWidth = 150

// StickySide is the edge a sticky column is pinned to.
type StickySide string

const (
	StickyLeft  StickySide = "left"
	StickyRight StickySide = "right"
)

// StickyColumn pins a column to one edge during horizontal scroll.
type StickyColumn struct {
	ID       string     `json:"id" yaml:"id"`
	Position StickySide `json:"position" yaml:"position"`
	Width    int        `json:"width,omitempty" yaml:"width,omitempty"`
}

func (s StickyColumn) width() int {
	if s.Width > 0 {
		return s.Width
	}
	return DefaultStickyWidth
}

// StickyPosition is the resolved placement of a sticky column.
type StickyPosition struct {
	Side   StickySide `json:"side"`
	Offset int        `json:"offset"`
}

// StickyOffset returns the pinned edge and pixel offset of columnID. The offset
// is the summed width of the same-side columns declared before it.
func StickyOffset(specs []StickyColumn, columnID string) (StickyPosition, bool) {
	offset := 0
	var side StickySide
	found := false
	for _, s := range specs {
		if s.ID == columnID {
			side = s.Position
			found = true
			break
		}
	}
	if !found || (side != StickyLeft && side != StickyRight) {
		return StickyPosition{}, false
	}
	for _, s := range specs {
		if s.ID == columnID {
			break
		}
		if s.Position == side {
			offset += s.width()
		}
	}
	return StickyPosition{Side: side, Offset: offset}, true
}

// stickyLayout precomputes offsets for every sticky column; it is rebuilt whenever
// the sticky column list changes.
func stickyLayout(specs []StickyColumn) map[string]StickyPosition {
	out := make(map[string]StickyPosition, len(specs))
	for _, s := range specs {
		if _, seen := out[s.ID]; seen {
			continue
		}
		if pos, ok := StickyOffset(specs, s.ID); ok {
			out[s.ID] = pos
		}
	}
	return out
}
