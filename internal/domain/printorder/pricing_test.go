package printorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/shared/valueobject"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		name string
		size PageSize
		mode PrintMode
		rate int64
	}{
		{"A4 black and white", PageSizeA4, PrintModeBlackWhite, 2},
		{"A4 color", PageSizeA4, PrintModeColor, 5},
		{"A3 black and white", PageSizeA3, PrintModeBlackWhite, 4},
		{"A3 color", PageSizeA3, PrintModeColor, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := RateFor(tt.size, tt.mode)
			require.NoError(t, err)
			assert.True(t, rate.Equals(valueobject.NewMoneyINRFromInt(tt.rate)))
		})
	}

	t.Run("unknown combination has no default rate", func(t *testing.T) {
		_, err := RateFor(PageSize("A5"), PrintModeColor)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidPricingKey))
	})
}

func TestComputeCost(t *testing.T) {
	t.Run("pages times copies times rate", func(t *testing.T) {
		cost, err := ComputeCost(PageSizeA3, PrintModeBlackWhite, 5, 3)
		require.NoError(t, err)
		assert.True(t, cost.Equals(valueobject.NewMoneyINRFromInt(60)))
	})

	t.Run("single page single copy", func(t *testing.T) {
		cost, err := ComputeCost(PageSizeA4, PrintModeColor, 1, 1)
		require.NoError(t, err)
		assert.True(t, cost.Equals(valueobject.NewMoneyINRFromInt(5)))
	})

	t.Run("zero copies rejected", func(t *testing.T) {
		_, err := ComputeCost(PageSizeA4, PrintModeBlackWhite, 5, 0)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
	})

	t.Run("zero pages rejected", func(t *testing.T) {
		_, err := ComputeCost(PageSizeA4, PrintModeBlackWhite, 0, 2)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
	})

	t.Run("unknown pricing key", func(t *testing.T) {
		_, err := ComputeCost(PageSize("letter"), PrintModeColor, 1, 1)
		assert.True(t, errors.Is(err, shared.ErrInvalidPricingKey))
	})
}
