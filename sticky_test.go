package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStickyOffset(t *testing.T) {
	specs := []StickyColumn{
		{ID: "paymentDate", Position: StickyLeft, Width: 100},
		{ID: "actions", Position: StickyRight},
		{ID: "referenceNumber", Position: StickyLeft},
		{ID: "amount", Position: StickyRight, Width: 80},
		{ID: "invoice", Position: StickyLeft},
	}

	tests := []struct {
		id   string
		want StickyPosition
	}{
		{"paymentDate", StickyPosition{Side: StickyLeft, Offset: 0}},
		{"referenceNumber", StickyPosition{Side: StickyLeft, Offset: 100}},
		{"invoice", StickyPosition{Side: StickyLeft, Offset: 250}},
		{"actions", StickyPosition{Side: StickyRight, Offset: 0}},
		{"amount", StickyPosition{Side: StickyRight, Offset: DefaultStickyWidth}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := StickyOffset(specs, tt.id)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := StickyOffset(specs, "collection")
	assert.False(t, ok)
}

func TestStickyOffsetInvalidSide(t *testing.T) {
	_, ok := StickyOffset([]StickyColumn{{ID: "a", Position: "middle"}}, "a")
	assert.False(t, ok)
}

func TestStickyLayout(t *testing.T) {
	layout := stickyLayout([]StickyColumn{
		{ID: "a", Position: StickyLeft},
		{ID: "b", Position: StickyLeft, Width: 60},
		{ID: "c", Position: StickyLeft},
	})
	assert.Equal(t, 0, layout["a"].Offset)
	assert.Equal(t, 150, layout["b"].Offset)
	assert.Equal(t, 210, layout["c"].Offset)
}
