package figure

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/imuplot/internal/samples"
)

func threeSamples() *samples.Columns {
	return &samples.Columns{
		Index:  []string{"0", "1", "2"},
		AccelX: []float64{0.01, 0.02, 0.03},
		AccelY: []float64{-0.01, 0, 0.01},
		AccelZ: []float64{0.98, 1.0, 1.02},
		GiroX:  []float64{10, -20, 30},
		GiroY:  []float64{0, 5, 0},
		GiroZ:  []float64{-1, -2, -3},
	}
}

func TestPanels(t *testing.T) {
	panels := Panels(threeSamples())
	require.Len(t, panels, 2)

	assert.Equal(t, "Aceleração (g)", panels[0].YLabel)
	assert.Equal(t, "Giro", panels[1].YLabel)
	require.Len(t, panels[0].Series, 3)
	require.Len(t, panels[1].Series, 3)
	assert.Equal(t, "accel_x", panels[0].Series[0].Name)
	assert.Equal(t, "giro_z", panels[1].Series[2].Name)
}

func TestXRange(t *testing.T) {
	min, max, err := XRange(threeSamples())
	require.NoError(t, err)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 2.0, max)

	_, _, err = XRange(&samples.Columns{})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestNew_ThreeSamples(t *testing.T) {
	fig, err := New(threeSamples(), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, fig.Plots, 2)

	for i, p := range fig.Plots {
		assert.Equal(t, XLabel, p.X.Label.Text)
		assert.Equal(t, 0.0, p.X.Min, "plot %d", i)
		assert.Equal(t, 2.0, p.X.Max, "plot %d", i)

		ticker, ok := p.X.Tick.Marker.(IntegerTicker)
		require.True(t, ok)
		assert.Equal(t, 10, ticker.MaxTicks)
		assert.True(t, p.Legend.Top)
	}
	assert.Equal(t, "Aceleração (g)", fig.Plots[0].Y.Label.Text)
	assert.Equal(t, "Giro", fig.Plots[1].Y.Label.Text)
}

func TestNew_IndexStartingAtOne(t *testing.T) {
	cols := threeSamples()
	cols.Index = []string{"1", "2", "3"}

	fig, err := New(cols, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2.0, fig.Plots[0].X.Max)

	ticks := fig.Plots[0].X.Tick.Marker.Ticks(fig.Plots[0].X.Min, fig.Plots[0].X.Max)
	require.Len(t, ticks, 3)
	assert.Equal(t, "1", ticks[0].Label)
	assert.Equal(t, "3", ticks[2].Label)
}

func TestNew_EmptyDataset(t *testing.T) {
	fig, err := New(&samples.Columns{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Nil(t, fig)
}

func TestNew_NonFiniteValuesLeaveGaps(t *testing.T) {
	cols := threeSamples()
	cols.AccelX[1] = math.NaN()
	cols.GiroY[1] = math.Inf(1)
	cols.GiroZ[0] = math.Inf(-1)

	fig, err := New(cols, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, fig.Plots, 2)

	var buf bytes.Buffer
	_, err = fig.WriteTo(&buf)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
}

func TestNew_AllValuesNonFinite(t *testing.T) {
	cols := threeSamples()
	cols.GiroX = []float64{math.NaN(), math.NaN(), math.NaN()}

	fig, err := New(cols, DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = fig.WriteTo(&buf)
	require.NoError(t, err)
}

func TestFiniteRuns(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name   string
		values []float64
		want   []plotter.XYs
	}{
		{"all finite", []float64{1, 2, 3}, []plotter.XYs{{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}}},
		{"gap in middle", []float64{1, nan, 3, 4}, []plotter.XYs{{{X: 0, Y: 1}}, {{X: 2, Y: 3}, {X: 3, Y: 4}}}},
		{"leading and trailing", []float64{inf, 2, -inf}, []plotter.XYs{{{X: 1, Y: 2}}}},
		{"none finite", []float64{nan, inf}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, finiteRuns(tt.values))
		})
	}
}

func TestWriteTo_PNG(t *testing.T) {
	fig, err := New(threeSamples(), Options{Width: 6 * vg.Inch, Height: 2.5 * vg.Inch, MaxTicks: 10})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := fig.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), b.Dy(), "figure should be wider than tall")
}

func TestNew_ZeroSizeUsesDefaults(t *testing.T) {
	fig, err := New(threeSamples(), Options{MaxTicks: 5})
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions().Width, fig.opts.Width)
	assert.Equal(t, DefaultOptions().Height, fig.opts.Height)
}

func TestSeriesColor_Wraps(t *testing.T) {
	assert.Equal(t, SeriesColors[0], SeriesColor(len(SeriesColors)))
}
