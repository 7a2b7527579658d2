package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
)

func TestLowLines(t *testing.T) {
	items := []pos.SettledItem{
		{ProductID: 1, Name: "Cappuccino", Qty: 2, Remaining: 3},
		{ProductID: 2, Name: "Latte", Qty: 1, Remaining: 20},
		{ProductID: 3, Name: "Espresso", Qty: 1, Remaining: -1}, // untracked
		{ProductID: 4, Name: "Croissant", Qty: 5, Remaining: 0},
	}

	got := LowLines(items, 5)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ProductID)
	assert.Equal(t, int64(4), got[1].ProductID)
}

func TestLowLinesNoneBelowThreshold(t *testing.T) {
	items := []pos.SettledItem{
		{ProductID: 1, Remaining: 10},
		{ProductID: 2, Remaining: -1},
	}
	assert.Empty(t, LowLines(items, 5))
}
