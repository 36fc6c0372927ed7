package viewer

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/imuplot/internal/figure"
	"github.com/banshee-data/imuplot/internal/samples"
)

// PageOptions controls the interactive page.
type PageOptions struct {
	Width, Height string // CSS size of each chart
	AssetsHost    string
	MaxTicks      int

	// CloseURL, when set, is posted to as a beacon when the page is closed.
	CloseURL string
	// FigureURL, when set, is linked below the charts.
	FigureURL string
}

// NewPage builds the two interactive line charts side by side. It returns
// figure.ErrEmptyDataset when there are no samples.
func NewPage(cols *samples.Columns, o PageOptions) (*components.Page, error) {
	xmin, xmax, err := figure.XRange(cols)
	if err != nil {
		return nil, err
	}
	if o.MaxTicks < 2 {
		o.MaxTicks = 10
	}

	labels, err := json.Marshal(cols.Index)
	if err != nil {
		return nil, fmt.Errorf("encode sample labels: %w", err)
	}

	page := components.NewPage()
	page.SetPageTitle("MPU6050 samples")
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.SetLayout(components.PageFlexLayout)

	panels := figure.Panels(cols)
	for i, panel := range panels {
		line := newPanelChart(panel, string(labels), xmin, xmax, o)
		if i == 0 && o.CloseURL != "" {
			line.AddJSFuncs(closeBeaconJS(o.CloseURL))
		}
		if i == len(panels)-1 && o.FigureURL != "" {
			line.AddJSFuncs(figureLinkJS(o.FigureURL))
		}
		page.AddCharts(line)
	}
	return page, nil
}

func newPanelChart(panel figure.Panel, labelsJSON string, xmin, xmax float64, o PageOptions) *charts.Line {
	initOpts := opts.Initialization{
		PageTitle: "MPU6050 samples",
		Width:     o.Width,
		Height:    o.Height,
	}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}

	colors := make([]string, len(panel.Series))
	for i := range panel.Series {
		colors[i] = hexColor(figure.SeriesColor(i))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Subtitle: summaryLine(panel.Series)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithColorsOpts(opts.Colors(colors)),
		charts.WithXAxisOpts(opts.XAxis{
			Type:         "value",
			Name:         figure.XLabel,
			NameLocation: "middle",
			NameGap:      25,
			Min:          xmin,
			Max:          xmax,
			MinInterval:  1,
			SplitNumber:  o.MaxTicks,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{
				Formatter: opts.FuncOpts(fmt.Sprintf(
					"function (v) { var l = %s; return l[v] !== undefined ? l[v] : v; }", labelsJSON)),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         panel.YLabel,
			NameLocation: "middle",
			NameGap:      45,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)

	for _, s := range panel.Series {
		data := make([]opts.LineData, len(s.Values))
		for j, v := range s.Values {
			if !samples.IsFinite(v) {
				// "-" is ECharts' empty value; the line breaks there.
				data[j] = opts.LineData{Value: []interface{}{j, "-"}}
				continue
			}
			data[j] = opts.LineData{Value: []interface{}{j, v}}
		}
		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

func summaryLine(series []samples.Series) string {
	parts := make([]string, 0, len(series))
	for _, s := range series {
		sum := samples.Summarize(s)
		parts = append(parts, fmt.Sprintf("%s μ=%.3g σ=%.3g", sum.Name, sum.Mean, sum.StdDev))
	}
	return strings.Join(parts, "  ")
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// closeBeaconJS dismisses the viewer when the page goes away. A page kept in
// the back/forward cache may come back, so it does not count as closed.
func closeBeaconJS(url string) string {
	u, _ := json.Marshal(url)
	return fmt.Sprintf("window.addEventListener('pagehide', function (e) { if (e.persisted) { return; } navigator.sendBeacon(%s); });", u)
}

func figureLinkJS(url string) string {
	u, _ := json.Marshal(url)
	return fmt.Sprintf("(function () { var a = document.createElement('a'); a.href = %s; a.target = '_blank'; a.rel = 'noopener'; a.textContent = 'figure.png'; a.style.margin = '12px'; document.body.appendChild(a); })();", u)
}
