package figure

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/imuplot/internal/samples"
)

// Options sizes the rendered figure.
type Options struct {
	Width, Height vg.Length
	MaxTicks      int
}

// DefaultOptions returns a 12x5 inch canvas with at most 10 x ticks.
func DefaultOptions() Options {
	return Options{Width: 12 * vg.Inch, Height: 5 * vg.Inch, MaxTicks: 10}
}

// Figure is the static two-panel chart. Plots are in display order, left to
// right.
type Figure struct {
	Plots []*plot.Plot
	opts  Options
}

// New builds one plot per panel. It fails with ErrEmptyDataset before any
// plot is created when cols has no samples.
func New(cols *samples.Columns, opts Options) (*Figure, error) {
	xmin, xmax, err := XRange(cols)
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	fig := &Figure{opts: opts}
	for _, panel := range Panels(cols) {
		p, err := newPanelPlot(panel, cols.Index, xmin, xmax, opts.MaxTicks)
		if err != nil {
			return nil, fmt.Errorf("%s panel: %w", panel.Name, err)
		}
		fig.Plots = append(fig.Plots, p)
	}
	return fig, nil
}

func newPanelPlot(panel Panel, index []string, xmin, xmax float64, maxTicks int) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = XLabel
	p.Y.Label.Text = panel.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range panel.Series {
		style := plotter.DefaultLineStyle
		style.Color = SeriesColor(i)
		style.Width = vg.Points(1.5)

		for _, run := range finiteRuns(s.Values) {
			line, err := plotter.NewLine(run)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", s.Name, err)
			}
			line.LineStyle = style
			p.Add(line)
		}
		// One legend entry per series, however many runs it was split into.
		p.Legend.Add(s.Name, &plotter.Line{LineStyle: style})
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	// Add widens the axis to the data; the x range is pinned afterwards.
	p.X.Min, p.X.Max = xmin, xmax
	p.X.Tick.Marker = IntegerTicker{MaxTicks: maxTicks, Labels: index}
	return p, nil
}

// finiteRuns splits values into runs of consecutive finite points, x being
// the row position. NaN and ±Inf samples end a run and are left as gaps.
func finiteRuns(values []float64) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for j, v := range values {
		if !samples.IsFinite(v) {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(j), Y: v})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// WriteTo renders the panels side by side as a PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	img := vgimg.New(f.opts.Width, f.opts.Height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(f.Plots),
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{f.Plots}, tiles, dc)
	for i, p := range f.Plots {
		p.Draw(canvases[0][i])
	}

	return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
}
