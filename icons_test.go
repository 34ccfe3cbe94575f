package datagrid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIcon(t *testing.T) {
	assert.Equal(t, IconMoney, ParseIcon("money"))
	assert.Equal(t, IconChart, ParseIcon(" Chart "))
	assert.Equal(t, IconChart, ParseIcon("📊"))
	assert.Equal(t, IconSearch, ParseIcon("🔍"))
	assert.Equal(t, IconNone, ParseIcon("rocket"))
	assert.Equal(t, IconNone, ParseIcon(""))
}

func TestIconGlyph(t *testing.T) {
	assert.Equal(t, "💰", IconMoney.Glyph())
	assert.Equal(t, "📄", IconDocument.Glyph())
	assert.Equal(t, "", IconNone.Glyph())
}

func TestPresetIconUnmarshal(t *testing.T) {
	var p Preset
	require.NoError(t, json.Unmarshal([]byte(`{"key":"essential","icon":"📊","columns":{"amount":true}}`), &p))
	assert.Equal(t, IconChart, p.Icon)
	assert.True(t, p.Columns.Visible("amount"))
}
