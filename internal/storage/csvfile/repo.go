// Package csvfile is the flat-file storage backend. Each Repository writes
// one comma-delimited table with a header row. Output goes to a temporary
// file in the destination directory and replaces the target only on Close,
// so a failed stage never leaves a partial table behind.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage"
)

// DateLayout formats time.Time cells.
const DateLayout = "2006-01-02"

// fileMode is applied to a table before it replaces the target; temp files
// are created owner-only.
const fileMode os.FileMode = 0o644

// Repository writes rows to a temp file and renames it over Path on Close.
type Repository struct {
	path    string
	columns []string
	tmp     *os.File
	buf     *bufio.Writer
	w       *csv.Writer
	record  []string
	done    bool
}

var _ storage.Repository = (*Repository)(nil)
var _ storage.Aborter = (*Repository)(nil)

func init() {
	storage.Register("csv", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.Path, cfg.Columns)
	})
}

// NewRepository creates the temp file next to path and writes the header.
// Missing parent directories are created.
func NewRepository(ctx context.Context, path string, columns []string) (*Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("csvfile: empty path")
	}
	if len(columns) == 0 {
		return nil, errors.New("csvfile: no columns")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csvfile: create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("csvfile: create temp for %s: %w", path, err)
	}

	buf := bufio.NewWriterSize(tmp, 1<<20)
	r := &Repository{
		path:    path,
		columns: slices.Clone(columns),
		tmp:     tmp,
		buf:     buf,
		w:       csv.NewWriter(buf),
		record:  make([]string, len(columns)),
	}
	if err := r.w.Write(r.columns); err != nil {
		_ = r.Abort()
		return nil, fmt.Errorf("csvfile: write header %s: %w", path, err)
	}
	return r, nil
}

// CopyFrom implements storage.Repository. columns must equal the columns the
// repository was opened with.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if r.done {
		return 0, fmt.Errorf("csvfile: %s already closed", r.path)
	}
	if !slices.Equal(columns, r.columns) {
		return 0, fmt.Errorf("csvfile: %s: columns %v do not match header %v", r.path, columns, r.columns)
	}
	var n int64
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if len(row) != len(r.columns) {
			return n, fmt.Errorf("csvfile: %s: row has %d values, want %d", r.path, len(row), len(r.columns))
		}
		for i, v := range row {
			r.record[i] = FormatValue(v)
		}
		if err := r.w.Write(r.record); err != nil {
			return n, fmt.Errorf("csvfile: write %s: %w", r.path, err)
		}
		n++
	}
	return n, nil
}

// Close flushes the temp file and renames it over the target path.
func (r *Repository) Close() error {
	if r.done {
		return nil
	}
	r.done = true

	r.w.Flush()
	err := r.w.Error()
	if err == nil {
		err = r.buf.Flush()
	}
	if err == nil {
		err = r.tmp.Chmod(fileMode)
	}
	if err == nil {
		err = r.tmp.Sync()
	}
	if cerr := r.tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(r.tmp.Name(), r.path)
	}
	if err != nil {
		_ = os.Remove(r.tmp.Name())
		return fmt.Errorf("csvfile: commit %s: %w", r.path, err)
	}
	return nil
}

// Abort discards the temp file. The target path is left untouched.
func (r *Repository) Abort() error {
	if r.done {
		return nil
	}
	r.done = true
	_ = r.tmp.Close()
	if err := os.Remove(r.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("csvfile: abort %s: %w", r.path, err)
	}
	return nil
}

// FormatValue renders one cell. nil and NaN become an empty cell, floats use
// the shortest decimal that round-trips, bools become 1/0 and times use
// DateLayout.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format(DateLayout)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
