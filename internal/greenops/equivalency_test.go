package greenops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_English(t *testing.T) {
	out, err := Calculate(CarbonInput{Value: 150, Unit: "kg"}, NewFormatter(LocaleEnglish))
	require.NoError(t, err)
	require.False(t, out.IsEmpty)
	require.Len(t, out.Results, 4)

	assert.InDelta(t, 150.0, out.InputKg, 1e-9)
	assert.InDelta(t, 781.25, out.Results[0].Value, 1e-6)
	assert.InDelta(t, 18248.18, out.Results[1].Value, 0.01)
	assert.InDelta(t, 2.5, out.Results[2].Value, 1e-9)
	assert.InDelta(t, 8.197, out.Results[3].Value, 0.001)

	assert.Equal(t, EquivalencyDistanceDriven, out.Results[0].Type)
	assert.Equal(t, "miles driven", out.Results[0].Label)
	assert.Equal(t, "3", out.Results[2].FormattedValue)
	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", out.DisplayText)
	assert.Equal(t, "(≈ 781 mi, 18,248 phones)", out.CompactText)
}

func TestCalculate_French(t *testing.T) {
	out, err := Calculate(CarbonInput{Value: 150, Unit: "kg"}, NewFormatter(LocaleFrench))
	require.NoError(t, err)
	require.Len(t, out.Results, 4)

	assert.InDelta(t, 781.25*KmPerMile, out.Results[0].Value, 1e-6)
	assert.Equal(t, "km en voiture", out.Results[0].Label)
	assert.Equal(t, "1257", ascii(out.Results[0].FormattedValue))
	assert.Equal(t, "18248", ascii(out.Results[1].FormattedValue))
	assert.Contains(t, out.DisplayText, "Équivalent à ~")
	assert.Contains(t, out.DisplayText, "recharges de smartphone")
	assert.Contains(t, out.CompactText, "km")
}

func TestCalculate_Units(t *testing.T) {
	f := NewFormatter(LocaleEnglish)
	tests := []struct {
		name  string
		input CarbonInput
	}{
		{"grams", CarbonInput{Value: 150000, Unit: "g"}},
		{"tonnes", CarbonInput{Value: 0.15, Unit: "t"}},
		{"kgCO2e", CarbonInput{Value: 150, Unit: "kgCO2e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Calculate(tt.input, f)
			require.NoError(t, err)
			assert.InDelta(t, 781.25, out.Results[0].Value, 1e-6)
		})
	}
}

func TestCalculate_EdgeCases(t *testing.T) {
	t.Run("below threshold is empty", func(t *testing.T) {
		out, err := Calculate(CarbonInput{Value: 0.5, Unit: "kg"}, nil)
		require.NoError(t, err)
		assert.True(t, out.IsEmpty)
		assert.InDelta(t, 0.5, out.InputKg, 1e-9)
		assert.Empty(t, out.DisplayText)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := Calculate(CarbonInput{Value: -1, Unit: "kg"}, nil)
		assert.ErrorIs(t, err, ErrNegativeValue)
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := Calculate(CarbonInput{Value: 10, Unit: "stone"}, nil)
		assert.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("nil formatter defaults to french", func(t *testing.T) {
		out, err := Calculate(CarbonInput{Value: 10, Unit: "kg"}, nil)
		require.NoError(t, err)
		assert.Contains(t, out.DisplayText, "Équivalent")
	})

	t.Run("huge totals are abbreviated", func(t *testing.T) {
		out, err := Calculate(CarbonInput{Value: 1_000_000, Unit: "kg"}, NewFormatter(LocaleEnglish))
		require.NoError(t, err)
		assert.Contains(t, out.Results[1].FormattedValue, "million")
	})
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	f := NewFormatter(LocaleEnglish)

	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", Describe(ctx, 150, f))
	assert.Empty(t, Describe(ctx, 0.2, f))
	assert.Empty(t, Describe(ctx, -4, f))
}
