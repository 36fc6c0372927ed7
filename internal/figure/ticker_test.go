package figure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickValues(t IntegerTicker, min, max float64) []float64 {
	var vals []float64
	for _, tk := range t.Ticks(min, max) {
		vals = append(vals, tk.Value)
	}
	return vals
}

func TestIntegerTicker_SmallRange(t *testing.T) {
	tk := IntegerTicker{MaxTicks: 10}
	assert.Equal(t, []float64{0, 1, 2}, tickValues(tk, 0, 2))
}

func TestIntegerTicker_NoFractionalTicks(t *testing.T) {
	tk := IntegerTicker{MaxTicks: 10}
	assert.Equal(t, []float64{1}, tickValues(tk, 0.2, 1.7))
	assert.Empty(t, tk.Ticks(0.2, 0.8))
}

func TestIntegerTicker_Properties(t *testing.T) {
	for _, maxTicks := range []int{2, 5, 10, 20} {
		for _, hi := range []float64{1, 9, 10, 11, 37, 99, 100, 101, 999, 12345} {
			tk := IntegerTicker{MaxTicks: maxTicks}
			ticks := tk.Ticks(0, hi)

			require.NotEmpty(t, ticks, "max=%d hi=%v", maxTicks, hi)
			assert.LessOrEqual(t, len(ticks), maxTicks, "max=%d hi=%v", maxTicks, hi)
			for _, v := range ticks {
				assert.Equal(t, math.Trunc(v.Value), v.Value)
				assert.GreaterOrEqual(t, v.Value, 0.0)
				assert.LessOrEqual(t, v.Value, hi)
				assert.False(t, v.IsMinor())
			}
		}
	}
}

func TestIntegerTicker_Steps(t *testing.T) {
	tk := IntegerTicker{MaxTicks: 10}
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, tickValues(tk, 0, 10))
	assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30, 35}, tickValues(tk, 0, 37))
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, tickValues(tk, 0, 100))
}

func TestIntegerTicker_DefaultMax(t *testing.T) {
	tk := IntegerTicker{}
	assert.LessOrEqual(t, len(tk.Ticks(0, 1000)), 10)
}

func TestIntegerTicker_ReversedRange(t *testing.T) {
	tk := IntegerTicker{MaxTicks: 10}
	assert.Equal(t, []float64{0, 1, 2}, tickValues(tk, 2, 0))
}

func TestIntegerTicker_Labels(t *testing.T) {
	tk := IntegerTicker{MaxTicks: 10, Labels: []string{"1", "2", "3"}}
	ticks := tk.Ticks(-1, 3)

	var labels []string
	for _, v := range ticks {
		labels = append(labels, v.Label)
	}
	assert.Equal(t, []string{"", "1", "2", "3", ""}, labels)
}

func TestIntegerTicker_SingleRowWidenedRange(t *testing.T) {
	// gonum widens a [0, 0] axis to [-1, 1] before asking for ticks.
	tk := IntegerTicker{MaxTicks: 10, Labels: []string{"42"}}
	ticks := tk.Ticks(-1, 1)
	require.Len(t, ticks, 3)
	assert.Equal(t, "", ticks[0].Label)
	assert.Equal(t, "42", ticks[1].Label)
	assert.Equal(t, "", ticks[2].Label)
}

func TestIntegerTicker_NumericWithoutLabels(t *testing.T) {
	ticks := IntegerTicker{MaxTicks: 10}.Ticks(-1, 1)
	require.Len(t, ticks, 3)
	assert.Equal(t, "-1", ticks[0].Label)
	assert.Equal(t, "1", ticks[2].Label)
}

func TestIntegerStep(t *testing.T) {
	tests := []struct {
		span     float64
		maxTicks int
		want     float64
	}{
		{0, 10, 1},
		{9, 10, 1},
		{10, 10, 2},
		{19, 10, 2},
		{45, 10, 5},
		{90, 10, 10},
		{1000, 10, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, integerStep(tt.span, tt.maxTicks), "span=%v", tt.span)
	}
}
