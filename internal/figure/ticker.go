package figure

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// IntegerTicker places major ticks on integer positions only, never more
// than MaxTicks of them. The step is taken from 1, 2, 5, 10, 20, 50...
// When Labels is set, each tick shows the label at its position, and
// positions outside Labels are left blank. Without Labels the number is shown.
type IntegerTicker struct {
	MaxTicks int
	Labels   []string
}

// Ticks implements plot.Ticker.
func (t IntegerTicker) Ticks(min, max float64) []plot.Tick {
	maxTicks := t.MaxTicks
	if maxTicks < 2 {
		maxTicks = 10
	}
	if min > max {
		min, max = max, min
	}
	lo, hi := math.Ceil(min), math.Floor(max)
	if lo > hi {
		return nil
	}

	step := integerStep(hi-lo, maxTicks)
	var ticks []plot.Tick
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: t.label(v)})
	}
	return ticks
}

func (t IntegerTicker) label(v float64) string {
	if t.Labels == nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if i := int(v); v >= 0 && i < len(t.Labels) {
		return t.Labels[i]
	}
	return ""
}

// integerStep returns the smallest step from the 1-2-5 sequence that fits
// span into at most maxTicks ticks.
func integerStep(span float64, maxTicks int) float64 {
	for mag := 1.0; ; mag *= 10 {
		for _, m := range [...]float64{1, 2, 5} {
			step := m * mag
			if math.Floor(span/step)+1 <= float64(maxTicks) {
				return step
			}
		}
	}
}
