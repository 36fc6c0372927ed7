// Package samples loads MPU6050 accelerometer and gyroscope logs into
// index-aligned columns.
package samples

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Column names as written in the logger's CSV header.
const (
	ColIndex  = "numero_amostra"
	ColAccelX = "accel_x"
	ColAccelY = "accel_y"
	ColAccelZ = "accel_z"
	ColGiroX  = "giro_x"
	ColGiroY  = "giro_y"
	ColGiroZ  = "giro_z"
)

// RequiredColumns lists every header the loader looks up, in logger order.
var RequiredColumns = []string{ColIndex, ColAccelX, ColAccelY, ColAccelZ, ColGiroX, ColGiroY, ColGiroZ}

// Columns holds one loaded file. Position i of every slice describes the
// same sample, and slices are in file order. Columns is not modified after
// loading.
type Columns struct {
	// Index keeps numero_amostra exactly as written.
	Index []string

	AccelX, AccelY, AccelZ []float64 // g
	GiroX, GiroY, GiroZ    []float64 // raw angular rate
}

// Len returns the number of samples.
func (c *Columns) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Index)
}

// Series is a named view over one sensor column.
type Series struct {
	Name   string
	Values []float64
}

// Accel returns the three acceleration series.
func (c *Columns) Accel() []Series {
	return []Series{
		{Name: ColAccelX, Values: c.AccelX},
		{Name: ColAccelY, Values: c.AccelY},
		{Name: ColAccelZ, Values: c.AccelZ},
	}
}

// Giro returns the three angular-rate series.
func (c *Columns) Giro() []Series {
	return []Series{
		{Name: ColGiroX, Values: c.GiroX},
		{Name: ColGiroY, Values: c.GiroY},
		{Name: ColGiroZ, Values: c.GiroZ},
	}
}

// Summary describes the spread of one series.
type Summary struct {
	Name   string  `json:"name"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the summary of the finite values of s. NaN and ±Inf
// samples are skipped. A series with no finite values gets a zero summary
// with the name set.
func Summarize(s Series) Summary {
	sum := Summary{Name: s.Name}
	vals := finiteValues(s.Values)
	if len(vals) == 0 {
		return sum
	}
	sum.Min = floats.Min(vals)
	sum.Max = floats.Max(vals)
	if len(vals) == 1 {
		sum.Mean = vals[0]
		return sum
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(vals, nil)
	return sum
}

func finiteValues(vs []float64) []float64 {
	n := floats.Count(IsFinite, vs)
	if n == len(vs) {
		return vs
	}
	out := make([]float64, 0, n)
	for _, v := range vs {
		if IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// IsFinite reports whether v is neither NaN nor infinite. Non-finite samples
// are drawn as gaps.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Summaries returns the summary of every sensor series, acceleration first.
func (c *Columns) Summaries() []Summary {
	series := append(c.Accel(), c.Giro()...)
	out := make([]Summary, 0, len(series))
	for _, s := range series {
		out = append(out, Summarize(s))
	}
	return out
}
