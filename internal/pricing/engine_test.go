package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlabth/printlab-backend/pkg/enums"
)

func TestUnitPrice(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		weight   int
		material enums.Material
		want     int64
	}{
		{"pla baseline", 50, enums.MaterialPLA, 100},
		{"petg rounds up", 50, enums.MaterialPETG, 120},
		{"abs", 100, enums.MaterialABS, 260},
		{"tpu", 10, enums.MaterialTPU, 30},
		{"wood", 25, enums.MaterialWood, 70},
		{"metal", 100, enums.MaterialMetal, 400},
		{"fractional multiplier rounds up", 7, enums.MaterialPETG, 17},
		{"unknown material falls back to 1.0", 50, enums.Material("CARBON"), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.UnitPrice(tt.weight, tt.material)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := engine.UnitPrice(0, enums.MaterialPLA)
		assert.ErrorIs(t, err, ErrInvalidWeight)
		_, err = engine.UnitPrice(-5, enums.MaterialPLA)
		assert.ErrorIs(t, err, ErrInvalidWeight)
	})
}

func TestItemTotal(t *testing.T) {
	engine := NewEngine()

	unit, total, err := engine.ItemTotal(50, enums.MaterialPLA, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(100), unit)
	assert.Equal(t, int64(200), total)

	_, _, err = engine.ItemTotal(50, enums.MaterialPLA, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestQuoteOrder(t *testing.T) {
	engine := NewEngine()

	t.Run("express metal", func(t *testing.T) {
		quote, err := engine.QuoteOrder(100, enums.MaterialMetal, 1, enums.DeliveryExpress)
		require.NoError(t, err)
		assert.Equal(t, int64(400), quote.UnitPrice)
		assert.Equal(t, int64(600), quote.TotalPrice)
		assert.Equal(t, 2.0, quote.Breakdown.MaterialMultiplier)
		assert.Equal(t, 1.5, quote.Breakdown.DeliveryMultiplier)
	})

	t.Run("standard has no delivery surcharge", func(t *testing.T) {
		quote, err := engine.QuoteOrder(50, enums.MaterialPLA, 2, enums.DeliveryStandard)
		require.NoError(t, err)
		assert.Equal(t, int64(100), quote.UnitPrice)
		assert.Equal(t, int64(200), quote.TotalPrice)
	})

	t.Run("express is one and a half times standard", func(t *testing.T) {
		standard, err := engine.QuoteOrder(80, enums.MaterialPETG, 3, enums.DeliveryStandard)
		require.NoError(t, err)
		express, err := engine.QuoteOrder(80, enums.MaterialPETG, 3, enums.DeliveryExpress)
		require.NoError(t, err)
		assert.Equal(t, int64(864), express.TotalPrice)
		assert.Equal(t, int64(576), standard.TotalPrice)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := engine.QuoteOrder(0, enums.MaterialPLA, 1, enums.DeliveryStandard)
		assert.ErrorIs(t, err, ErrInvalidWeight)
		_, err = engine.QuoteOrder(50, enums.MaterialPLA, -1, enums.DeliveryStandard)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestQuoteMonotonicity(t *testing.T) {
	engine := NewEngine()

	var prev int64
	for weight := 1; weight <= 200; weight += 7 {
		quote, err := engine.QuoteOrder(weight, enums.MaterialPETG, 1, enums.DeliveryStandard)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quote.TotalPrice, prev, "weight %d", weight)
		prev = quote.TotalPrice
	}

	prev = 0
	for qty := 1; qty <= 20; qty++ {
		quote, err := engine.QuoteOrder(60, enums.MaterialABS, qty, enums.DeliveryExpress)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quote.TotalPrice, prev, "qty %d", qty)
		prev = quote.TotalPrice
	}
}
