package samples

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/imuplot/internal/fsutil"
	"github.com/banshee-data/imuplot/internal/monitoring"
)

// ErrMissingColumn is wrapped by errors for a header that lacks a required
// column.
var ErrMissingColumn = errors.New("missing required column")

// ErrIsDirectory is returned by Load when the path names a directory.
var ErrIsDirectory = errors.New("is a directory")

// ValueError reports a sensor field that is not a floating-point number.
type ValueError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("row %d: column %s: invalid number %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// Options controls how the CSV is read.
type Options struct {
	// Delimiter separates fields. Zero means ';'.
	Delimiter rune
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load opens path on fsys and reads it with Read. The file is closed before
// Load returns, whether or not reading succeeded.
func Load(fsys fsutil.FileSystem, path string, opts Options) (*Columns, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat samples file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("samples file %s: %w", path, ErrIsDirectory)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples file: %w", err)
	}
	defer f.Close()

	cols, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Logf("loaded %d samples from %s (%d bytes)", cols.Len(), path, info.Size())
	return cols, nil
}

// Read parses a delimited sample log with a header row. Columns are looked
// up by name, so extra or reordered columns are accepted. The first error
// aborts the read and no partial result is returned. A completely empty
// input yields empty Columns.
func Read(r io.Reader, opts Options) (*Columns, error) {
	cr := csv.NewReader(&bomSkipper{r: r})
	cr.Comma = ';'
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.ReuseRecord = true
	// Rows may be longer or shorter than the header; only the required
	// fields have to be present.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		// No header and no rows: an empty dataset, reported by the renderers.
		return &Columns{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	idx := make([]int, len(RequiredColumns))
	last := 0
	for i, name := range RequiredColumns {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[i] = p
		last = max(last, p)
	}

	cols := &Columns{}
	sensors := []*[]float64{&cols.AccelX, &cols.AccelY, &cols.AccelZ, &cols.GiroX, &cols.GiroY, &cols.GiroZ}

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if len(rec) <= last {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read row %d: %w", row,
				&csv.ParseError{StartLine: line, Line: line, Column: 1, Err: csv.ErrFieldCount})
		}

		cols.Index = append(cols.Index, rec[idx[0]])
		for i, dst := range sensors {
			name := RequiredColumns[i+1]
			raw := rec[idx[i+1]]
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			// Out-of-range numbers come back as ±Inf and are kept.
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, &ValueError{Row: row, Column: name, Value: raw, Err: err}
			}
			*dst = append(*dst, v)
		}
	}
	return cols, nil
}

// bomSkipper drops a leading UTF-8 byte order mark so the first header
// name matches.
type bomSkipper struct {
	r       io.Reader
	checked bool
	pending []byte
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, len(utf8BOM))
		n, err := io.ReadFull(b.r, head)
		head = head[:n]
		if !bytes.Equal(head, utf8BOM) {
			b.pending = head
		}
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
	}
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	return b.r.Read(p)
}
