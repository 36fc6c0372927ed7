// Package figure builds the two-panel sample figure: acceleration on the
// left, angular rate on the right, both against sample position.
package figure

import (
	"errors"
	"image/color"

	"github.com/banshee-data/imuplot/internal/samples"
)

// ErrEmptyDataset is returned when there is no sample to bound the x axis.
var ErrEmptyDataset = errors.New("no samples to plot")

// XLabel is shared by both panels.
const XLabel = "Amostra"

// Panel describes one plot area.
type Panel struct {
	Name   string
	YLabel string
	Series []samples.Series
}

// Panels returns the acceleration and angular-rate panels, in display order.
func Panels(cols *samples.Columns) []Panel {
	return []Panel{
		{Name: "accel", YLabel: "Aceleração (g)", Series: cols.Accel()},
		{Name: "giro", YLabel: "Giro", Series: cols.Giro()},
	}
}

// XRange returns the horizontal bounds shared by both panels: position 0 to
// the position of the last sample.
func XRange(cols *samples.Columns) (min, max float64, err error) {
	n := cols.Len()
	if n == 0 {
		return 0, 0, ErrEmptyDataset
	}
	return 0, float64(n - 1), nil
}

// SeriesColors are assigned to series in order within a panel.
var SeriesColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

// SeriesColor returns the colour of the i-th series in a panel.
func SeriesColor(i int) color.RGBA {
	return SeriesColors[i%len(SeriesColors)]
}
