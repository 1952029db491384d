// Package skiplog records rows dropped by the pipeline to a CSV file so they
// can be inspected after a run.
package skiplog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the first row of every reject log.
var Header = []string{"dataset", "reason", "line_number"}

// Stats writes rejected rows and counts them per dataset and reason.
type Stats struct {
	reasons map[string]int
	w       *csv.Writer
	f       *os.File
}

// New creates path (and its parent directory) and writes the header. The
// returned close function flushes and closes the file; it is safe to call
// more than once.
func New(path string) (*Stats, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create dir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("write header %s: %w", path, err)
	}
	s := &Stats{reasons: make(map[string]int), w: w, f: f}
	return s, s.close, nil
}

// Add appends one rejected row.
func (s *Stats) Add(dataset, reason string, line int) {
	s.reasons[dataset+"/"+reason]++
	_ = s.w.Write([]string{dataset, reason, strconv.Itoa(line)})
}

// Count returns how many rows of dataset were rejected for reason.
func (s *Stats) Count(dataset, reason string) int {
	return s.reasons[dataset+"/"+reason]
}

// Total returns the number of rejected rows written.
func (s *Stats) Total() int {
	n := 0
	for _, c := range s.reasons {
		n += c
	}
	return n
}

func (s *Stats) close() error {
	if s.f == nil {
		return nil
	}
	s.w.Flush()
	err := s.w.Error()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	s.f = nil
	return err
}
