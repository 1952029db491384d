// Package csv reads delimited text into rows aligned to a fixed column
// layout. Header names are canonicalized (BOM stripped, trimmed, mapped via
// header_map or lowercased with spaces replaced by underscores) and matched
// against the layout; unknown source columns are ignored.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"strings"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer/builtin"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("csv: missing required column")

// ErrEmptyInput is returned when the input has no header line.
var ErrEmptyInput = errors.New("csv: empty input")

// Layout describes the target shape of rows produced by ReadRows.
type Layout struct {
	// Columns is the target column order; Row.V[i] holds Columns[i].
	Columns []string

	// Required columns must be present in the header. Their cells may still
	// be empty on individual rows; that is a row-level concern.
	Required []string

	// HeaderMap maps raw source headers to target column names. Entries
	// from the parser option header_map are layered on top.
	HeaderMap map[string]string
}

// CanonicalHeader maps a raw header cell to its column name: trimmed, then
// looked up in hm, otherwise lowercased with spaces replaced by "_".
func CanonicalHeader(h string, hm map[string]string) string {
	if builtin.HasEdgeSpace(h) {
		h = strings.TrimSpace(h)
	}
	if mapped, ok := hm[h]; ok {
		return mapped
	}
	return strings.ReplaceAll(strings.ToLower(h), " ", "_")
}

const defaultLogEvery = 100_000

// ReadRows reads every record of src into rows aligned to layout.Columns.
// Empty cells and columns absent from the header become nil.
//
// Options (all optional):
//   - comma (string; first rune used; default ',')
//   - trim_space (bool; default true)
//   - lazy_quotes (bool; default false)
//   - header_map (object; source header -> column)
//   - log_every (int; progress log interval in rows, 0 disables; default 100000)
//
// Malformed records are reported to onErr(line, err) and skipped. A missing
// header or a missing required column aborts the read.
func ReadRows(
	ctx context.Context,
	src io.ReadCloser,
	layout Layout,
	opt config.Options,
	onErr func(line int, err error),
) ([]transformer.Row, error) {
	defer src.Close()

	trim := opt.Bool("trim_space", true)
	hm := maps.Clone(layout.HeaderMap)
	if hm == nil {
		hm = map[string]string{}
	}
	maps.Copy(hm, opt.StringMap("header_map"))

	cr := csv.NewReader(src)
	cr.Comma = opt.Rune("comma", ',')
	cr.LazyQuotes = opt.Bool("lazy_quotes", false)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	hdr = stripHeaderBOM(hdr)

	srcIdx := make(map[string]int, len(hdr))
	for i, h := range hdr {
		name := CanonicalHeader(h, hm)
		if _, dup := srcIdx[name]; !dup {
			srcIdx[name] = i
		}
	}
	for _, req := range layout.Required {
		if _, ok := srcIdx[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	colIx := make([]int, len(layout.Columns))
	for t, target := range layout.Columns {
		colIx[t] = -1
		if si, ok := srcIdx[target]; ok {
			colIx[t] = si
		}
	}

	logEvery := opt.Int("log_every", defaultLogEvery)
	var rows []transformer.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("csv read: %w", err)
			}
			if onErr != nil {
				onErr(pe.StartLine, fmt.Errorf("csv read: %w", err))
			}
			continue
		}
		line, _ := cr.FieldPos(0)

		row := transformer.Row{Line: line, V: make([]any, len(layout.Columns))}
		for t, si := range colIx {
			if si < 0 || si >= len(rec) {
				continue
			}
			v := rec[si]
			if trim && builtin.HasEdgeSpace(v) {
				v = strings.TrimSpace(v)
			}
			if v != "" {
				row.V[t] = v
			}
		}
		rows = append(rows, row)

		if logEvery > 0 && len(rows)%logEvery == 0 {
			log.Printf("reader: line=%d rows=%d", line, len(rows))
		}
	}
}
