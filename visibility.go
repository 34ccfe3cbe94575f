package datagrid

import (
	"encoding/json"
	"maps"
)

// VisibilityState maps column id to visibility. Missing ids are visible.
type VisibilityState map[string]bool

// Visible reports whether the column is shown.
func (v VisibilityState) Visible(columnID string) bool {
	shown, ok := v[columnID]
	return !ok || shown
}

// Preset is a named column-visibility configuration.
type Preset struct {
	Key         string          `json:"key" yaml:"key"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        Icon            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Columns     VisibilityState `json:"columns" yaml:"columns"`
}

// View is the currently attributed column layout: either a preset or a custom
// arrangement. The zero value is Custom.
type View struct {
	preset string
}

// PresetView attributes the layout to the preset with the given key.
func PresetView(key string) View { return View{preset: key} }

// CustomView marks the layout as manually adjusted.
func CustomView() View { return View{} }

// Preset returns the preset key when the view is attributed to one.
func (v View) Preset() (string, bool) { return v.preset, v.preset != "" }

func (v View) IsCustom() bool { return v.preset == "" }

// String returns the preset key or "custom".
func (v View) String() string {
	if v.preset == "" {
		return "custom"
	}
	return v.preset
}

func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// visibility tracks column visibility and the attributed view.
type visibility struct {
	state   VisibilityState
	view    View
	presets map[string]Preset
}

func newVisibility(presets []Preset) visibility {
	idx := make(map[string]Preset, len(presets))
	for _, p := range presets {
		if p.Key == "" {
			continue
		}
		if _, dup := idx[p.Key]; !dup {
			idx[p.Key] = p
		}
	}
	return visibility{state: VisibilityState{}, presets: idx}
}

// set applies a manual change. It reports false when the change was refused
// because the column cannot be hidden.
func (v *visibility) set(col Column, visible bool) bool {
	if !visible && !col.Hideable {
		return false
	}
	next := maps.Clone(v.state)
	if next == nil {
		next = VisibilityState{}
	}
	next[col.ID] = visible
	v.state = next
	v.view = CustomView()
	return true
}

// apply swaps in the preset's whole visibility map. Unknown keys are ignored.
func (v *visibility) apply(key string, cols columnSet) bool {
	p, ok := v.presets[key]
	if !ok {
		return false
	}
	next := make(VisibilityState, len(p.Columns))
	for id, shown := range p.Columns {
		if c, ok := cols.get(id); ok && !c.Hideable && !shown {
			continue
		}
		next[id] = shown
	}
	v.state = next
	v.view = PresetView(key)
	return true
}

func (v visibility) visible(col Column) bool {
	if !col.Hideable {
		return true
	}
	return v.state.Visible(col.ID)
}
