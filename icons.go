package datagrid

import "strings"

// Icon identifies one of the glyphs a preset may carry.
type Icon string

const (
	IconNone     Icon = ""
	IconChart    Icon = "chart"
	IconMoney    Icon = "money"
	IconDocument Icon = "document"
	IconSearch   Icon = "search"
	IconList     Icon = "list"
	IconCustom   Icon = "custom"
)

var iconGlyphs = map[Icon]string{
	IconChart:    "📊",
	IconMoney:    "💰",
	IconDocument: "📄",
	IconSearch:   "🔍",
	IconList:     "📋",
	IconCustom:   "⚙️",
}

// ParseIcon maps a catalog name (or the glyph itself) to an Icon.
// Unrecognised names resolve to IconNone.
func ParseIcon(s string) Icon {
	s = strings.TrimSpace(s)
	if s == "" {
		return IconNone
	}
	if _, ok := iconGlyphs[Icon(strings.ToLower(s))]; ok {
		return Icon(strings.ToLower(s))
	}
	for icon, glyph := range iconGlyphs {
		if glyph == s {
			return icon
		}
	}
	return IconNone
}

// Glyph returns the display character for the icon.
func (i Icon) Glyph() string {
	return iconGlyphs[i]
}

func (i *Icon) UnmarshalText(b []byte) error {
	*i = ParseIcon(string(b))
	return nil
}
