// Package testutil provides shared fixtures for sample-log and viewer tests.
package testutil

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SamplesHeader is the header the data logger writes.
const SamplesHeader = "numero_amostra;accel_x;accel_y;accel_z;giro_x;giro_y;giro_z"

// SampleRow is one fixture row. Fields are written verbatim.
type SampleRow struct {
	Index                  string
	AccelX, AccelY, AccelZ string
	GiroX, GiroY, GiroZ    string
}

// SamplesCSV joins SamplesHeader and rows into a semicolon-delimited log.
func SamplesCSV(rows ...SampleRow) string {
	var b strings.Builder
	b.WriteString(SamplesHeader)
	b.WriteByte('\n')
	for _, r := range rows {
		fmt.Fprintf(&b, "%s;%s;%s;%s;%s;%s;%s\n", r.Index, r.AccelX, r.AccelY, r.AccelZ, r.GiroX, r.GiroY, r.GiroZ)
	}
	return b.String()
}

// SequentialRows builds n rows indexed from first. Values are derived from
// the row number so every column is distinct.
func SequentialRows(first, n int) []SampleRow {
	rows := make([]SampleRow, n)
	for i := range rows {
		k := first + i
		rows[i] = SampleRow{
			Index:  fmt.Sprint(k),
			AccelX: fmt.Sprintf("%.2f", 0.01*float64(k)),
			AccelY: fmt.Sprintf("%.2f", -0.02*float64(k)),
			AccelZ: fmt.Sprintf("%.2f", 1+0.001*float64(k)),
			GiroX:  fmt.Sprint(10 * k),
			GiroY:  fmt.Sprint(-5 * k),
			GiroZ:  fmt.Sprint(k * k),
		}
	}
	return rows
}

// WriteSamplesFile writes body to name inside a fresh temp dir and returns
// the file path.
func WriteSamplesFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d (%s), want %d (%s)", got, http.StatusText(got), want, http.StatusText(want))
	}
}
