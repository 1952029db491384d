package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/clean"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/dataset"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/datasource"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/features"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/kpi"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/linkage"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/metrics"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/skiplog"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage"
)

// Stage names accepted by -stage.
const (
	stageClean = "clean"
	stageMerge = "merge"
	stageKPI   = "kpi"
	stageAll   = "all"
)

const (
	topFuelsShown  = 5
	topBrandsShown = 10
)

// runner executes pipeline stages against one resolved configuration.
type runner struct {
	p       config.Pipeline
	verbose bool

	// now is the clock car_age falls back to when reference_year is unset.
	now func() time.Time
}

// Function variables used as test seams.
var (
	newSourceFn = datasource.New
	writeFn     = dataset.Write
)

// stagesFor expands a -stage value into the ordered list of stages to run.
func stagesFor(stage string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(stage)) {
	case stageClean:
		return []string{stageClean}, nil
	case stageMerge:
		return []string{stageMerge}, nil
	case stageKPI:
		return []string{stageKPI}, nil
	case "", stageAll:
		return []string{stageClean, stageMerge, stageKPI}, nil
	default:
		return nil, fmt.Errorf("unknown stage %q (want clean, merge, kpi or all)", stage)
	}
}

// run executes stage ("clean", "merge", "kpi" or "all"). Each stage reads
// its inputs from disk, so stages can be re-run independently.
func (r *runner) run(ctx context.Context, stage string) error {
	stages, err := stagesFor(stage)
	if err != nil {
		return err
	}
	for _, s := range stages {
		start := time.Now()
		var err error
		switch s {
		case stageClean:
			err = r.clean(ctx)
		case stageMerge:
			err = r.merge(ctx)
		case stageKPI:
			err = r.kpi(ctx)
		}
		d := time.Since(start)
		metrics.RecordStep(r.p.Job, s, err, d)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		log.Printf("%s: done in %s", s, d.Truncate(time.Millisecond))
	}
	return nil
}

func (r *runner) outPath(name string) string {
	return filepath.Join(r.p.Output.Dir, name)
}

func (r *runner) write(ctx context.Context, name string, columns []string, rows [][]any) error {
	cfg := storage.Config{Kind: r.p.Output.Kind, Path: r.outPath(name), Columns: columns}
	n, err := writeFn(ctx, cfg, rows, r.verbose)
	if err != nil {
		return err
	}
	log.Printf("write: path=%s rows=%d", cfg.Path, n)
	return nil
}

func (r *runner) fileSource(name string) (datasource.Source, error) {
	return newSourceFn(config.Source{Kind: "file", File: config.SourceFile{Path: r.outPath(name)}})
}

// clean reads both raw inputs, applies the cleaning rules and writes the
// cleaned tables.
func (r *runner) clean(ctx context.Context) error {
	var reject clean.RejectFunc
	if r.p.RejectLog != "" {
		sl, closeLog, err := skiplog.New(r.p.RejectLog)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeLog(); err != nil {
				log.Printf("clean: reject log %s: %v", r.p.RejectLog, err)
			}
		}()
		reject = sl.Add
		defer func() { log.Printf("clean: reject_log=%s rows=%d", r.p.RejectLog, sl.Total()) }()
	}
	c := clean.New(r.p.Rules, reject)

	lsrc, err := newSourceFn(r.p.Listings.Source)
	if err != nil {
		return err
	}
	listings, lst, err := c.LoadListings(ctx, lsrc, r.p.Listings.Parser.Options)
	if err != nil {
		return err
	}
	lst.Log()
	metrics.RecordRow(r.p.Job, metrics.KindListingsRead, int64(lst.Read))
	metrics.RecordRow(r.p.Job, metrics.KindListingsKept, int64(lst.Kept))

	esrc, err := newSourceFn(r.p.Emissions.Source)
	if err != nil {
		return err
	}
	emissions, est, err := c.LoadEmissions(ctx, esrc, r.p.Emissions.Parser.Options)
	if err != nil {
		return err
	}
	est.Log()
	metrics.RecordRow(r.p.Job, metrics.KindEmissionsRead, int64(est.Read))
	metrics.RecordRow(r.p.Job, metrics.KindEmissionsKept, int64(est.Kept))
	metrics.RecordRow(r.p.Job, metrics.KindEmissionsDuplicates, int64(est.Dropped[clean.ReasonDuplicate]))
	metrics.RecordRow(r.p.Job, metrics.KindParseErrors, int64(lst.ParseErrors+est.ParseErrors))

	if err := r.write(ctx, r.p.Output.Files.ListingsClean, dataset.ListingColumns, dataset.EncodeListings(listings)); err != nil {
		return err
	}
	return r.write(ctx, r.p.Output.Files.EmissionsClean, dataset.EmissionColumns, dataset.EncodeEmissions(emissions))
}

// merge joins the cleaned tables on (brand, model base, year), derives the
// feature columns and writes the merged table.
func (r *runner) merge(ctx context.Context) error {
	lsrc, err := r.fileSource(r.p.Output.Files.ListingsClean)
	if err != nil {
		return err
	}
	listings, err := dataset.ReadListings(ctx, lsrc)
	if err != nil {
		return fmt.Errorf("read cleaned listings: %w", err)
	}
	esrc, err := r.fileSource(r.p.Output.Files.EmissionsClean)
	if err != nil {
		return err
	}
	emissions, err := dataset.ReadEmissions(ctx, esrc)
	if err != nil {
		return fmt.Errorf("read cleaned emissions: %w", err)
	}

	ix := linkage.NewIndex(emissions)
	if r.verbose {
		log.Printf("merge: emissions=%d keys=%d collapsed=%d unkeyed=%d", len(emissions), ix.Len(), ix.Collapsed, ix.Unkeyed)
	}
	res := linkage.LeftJoin(listings, ix)

	refYear := features.ReferenceYear(r.p.ReferenceYear, r.now())
	features.Apply(res.Rows, refYear)

	log.Printf("merge: listings=%d merged=%d co2_matched=%d match_rate=%.2f%% reference_year=%d",
		len(listings), len(res.Rows), res.Matched, res.MatchRate(), refYear)
	log.Printf("merge: top_fuels=%v", kpi.Top(res.Rows, kpi.ByFuel, topFuelsShown))
	log.Printf("merge: top_brands=%v", kpi.Top(res.Rows, kpi.ByBrand, topBrandsShown))
	metrics.RecordRow(r.p.Job, metrics.KindMerged, int64(len(res.Rows)))
	metrics.RecordRow(r.p.Job, metrics.KindMatched, int64(res.Matched))
	metrics.RecordMatchRate(r.p.Job, res.MatchRate())

	return r.write(ctx, r.p.Output.Files.Merged, dataset.MergedColumns, dataset.EncodeMerged(res.Rows))
}

// kpi reads the merged table and writes the four summary tables.
func (r *runner) kpi(ctx context.Context) error {
	src, err := r.fileSource(r.p.Output.Files.Merged)
	if err != nil {
		return err
	}
	rows, err := dataset.ReadMerged(ctx, src)
	if err != nil {
		return fmt.Errorf("read merged: %w", err)
	}
	files := kpiFiles(r.p.Output.Files)
	for _, t := range kpi.All(rows, r.p.Rules.TopBrands) {
		if r.verbose {
			log.Printf("kpi: table=%s groups=%d", t.Name, len(t.Rows))
		}
		if err := r.write(ctx, files[t.Name], t.Columns, t.Rows); err != nil {
			return err
		}
	}
	return nil
}

// kpiFiles maps KPI table names to their configured output file.
func kpiFiles(f config.OutputFiles) map[string]string {
	return map[string]string{
		kpi.PriceByFuel:   f.KPIPriceByFuel,
		kpi.EVShareByYear: f.KPIEVShareByYear,
		kpi.CO2ByFuel:     f.KPICO2ByFuel,
		kpi.TopBrands:     f.KPITopBrands,
	}
}

