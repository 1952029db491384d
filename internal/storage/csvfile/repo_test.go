package csvfile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestRepository_WriteAndCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "merged.csv")
	cols := []string{"brand", "price", "has_co2_data", "registration_date", "co2"}

	repo, err := NewRepository(ctx, path, cols)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	rows := [][]any{
		{"volkswagen", 15000.0, true, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), 120.5},
		{"a, b", 0.1, false, nil, nil},
	}
	n, err := repo.CopyFrom(ctx, cols, rows)
	if err != nil || n != 2 {
		t.Fatalf("CopyFrom = %d, %v; want 2, nil", n, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("target exists before Close: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := "brand,price,has_co2_data,registration_date,co2\n" +
		"volkswagen,15000,1,2019-03-01,120.5\n" +
		"\"a, b\",0.1,0,,\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("file = %q\nwant %q", got, want)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Fatalf("mode = %v; want -rw-r--r--", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestRepository_AbortKeepsPreviousOutput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "kpi.csv")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo, err := NewRepository(ctx, path, []string{"a"})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	if _, err := repo.CopyFrom(ctx, []string{"a"}, [][]any{{1}}); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if err := storage.Discard(repo); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if got := readFile(t, path); got != "old\n" {
		t.Fatalf("target = %q; want untouched", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp file not removed: %v", entries)
	}
	if _, err := repo.CopyFrom(ctx, []string{"a"}, nil); err == nil {
		t.Fatalf("CopyFrom after Abort = nil error")
	}
}

func TestRepository_Mismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := NewRepository(ctx, filepath.Join(t.TempDir(), "x.csv"), []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Abort()

	if _, err := repo.CopyFrom(ctx, []string{"b", "a"}, nil); err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("column mismatch err = %v", err)
	}
	if _, err := repo.CopyFrom(ctx, []string{"a", "b"}, [][]any{{1}}); err == nil || !strings.Contains(err.Error(), "row has 1 values") {
		t.Fatalf("row width err = %v", err)
	}
}

func TestNewRepository_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := NewRepository(ctx, "", []string{"a"}); err == nil {
		t.Fatalf("empty path accepted")
	}
	if _, err := NewRepository(ctx, filepath.Join(t.TempDir(), "x.csv"), nil); err == nil {
		t.Fatalf("empty columns accepted")
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewRepository(canceled, filepath.Join(t.TempDir(), "x.csv"), []string{"a"}); err == nil {
		t.Fatalf("canceled context accepted")
	}
}

func TestRegisteredAsCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.csv")
	repo, err := storage.New(context.Background(), storage.Config{Kind: "csv", Path: path, Columns: []string{"a"}})
	if err != nil {
		t.Fatalf("storage.New(csv): %v", err)
	}
	if _, ok := repo.(*Repository); !ok {
		t.Fatalf("storage.New(csv) = %T", repo)
	}
	_ = repo.Close()
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{int64(-7), "-7"},
		{1.0, "1"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e21, "1000000000000000000000"},
		{math.NaN(), ""},
		{true, "1"},
		{false, "0"},
		{time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC), "2020-01-02"},
		{uint8(3), "3"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Fatalf("FormatValue(%#v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
