package dataset

import (
	"context"
	"fmt"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/datasource"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/parser/csv"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer"
)

// BatchSize is the number of rows handed to a repository per CopyFrom.
const BatchSize = 5000

// Write opens the repository described by cfg, copies rows and commits. On
// any failure the repository is discarded so the previous output survives.
func Write(ctx context.Context, cfg storage.Config, rows [][]any, verbose bool) (int64, error) {
	repo, err := storage.New(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	n, err := storage.CopyBatches(ctx, cfg.Columns, rows, BatchSize, repo.CopyFrom, verbose)
	if err != nil {
		_ = storage.Discard(repo)
		return n, fmt.Errorf("write %s: %w", cfg.Path, err)
	}
	if err := repo.Close(); err != nil {
		return n, err
	}
	return n, nil
}

// Read loads a table previously produced by Write. Every column must be
// present and every line well formed.
func Read(ctx context.Context, src datasource.Source, columns []string) ([]transformer.Row, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	var firstErr error
	rows, err := csv.ReadRows(ctx, rc, csv.Layout{Columns: columns, Required: columns}, nil, func(line int, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("line %d: %w", line, err)
		}
	})
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return rows, nil
}

// ReadListings reads and decodes a cleaned listings table.
func ReadListings(ctx context.Context, src datasource.Source) ([]record.Listing, error) {
	rows, err := Read(ctx, src, ListingColumns)
	if err != nil {
		return nil, err
	}
	return DecodeListings(rows)
}

// ReadEmissions reads and decodes a cleaned emissions table.
func ReadEmissions(ctx context.Context, src datasource.Source) ([]record.Emission, error) {
	rows, err := Read(ctx, src, EmissionColumns)
	if err != nil {
		return nil, err
	}
	return DecodeEmissions(rows)
}

// ReadMerged reads and decodes a merged table.
func ReadMerged(ctx context.Context, src datasource.Source) ([]record.Merged, error) {
	rows, err := Read(ctx, src, MergedColumns)
	if err != nil {
		return nil, err
	}
	return DecodeMerged(rows)
}
