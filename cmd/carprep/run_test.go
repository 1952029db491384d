package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/dataset"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/datasource/file"
)

const listingsCSV = "no,brand,model,year,price_in_euro,power_kw,mileage_in_km,registration_date,fuel_type,transmission_type\n" +
	"0,BMW,3 Series 320d,2018,21000,140,80000,05/2018,Diesel,Automatic\n" +
	"1,Volkswagen,Golf VII 1.6 TDI,2018,15000,85,60000,03/2018,Diesel,Manual\n" +
	"2,Tesla,Model 3,2021,42000,211,15000,,Electric,Automatic\n" +
	"3,Tesla,Model S,2021,400000,300,5000,,Electric,Automatic\n" +
	"4,Opel,Corsa,,9000,55,120000,,Petrol,Manual\n"

const emissionsCSV = "Year,Make,Model,Vehicle Class,Fuel Type,Engine Size (L),Motor (kW),Fuel Consumption [Comb (L/100 km)],CO2 Emissions (g/km)\n" +
	"2018,BMW,3 Series,compact,D,2.0,,5.1,134\n" +
	"2018,Volkswagen,Golf,compact,D,1.6,,4.5,118\n" +
	"2018,Volkswagen,Golf,compact,D,2.0,,5.0,130\n"

func writeInput(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

// newTestRunner lays out raw inputs in a temp dir and returns a runner whose
// outputs land in the same dir.
func newTestRunner(t *testing.T) (*runner, string) {
	t.Helper()
	dir := t.TempDir()
	writeInput(t, filepath.Join(dir, "listings.csv"), listingsCSV)
	writeInput(t, filepath.Join(dir, "co2.csv"), emissionsCSV)

	p := *config.New()
	p.ReferenceYear = 2024
	p.Listings.Source.File.Path = filepath.Join(dir, "listings.csv")
	p.Emissions.Source.File.Path = filepath.Join(dir, "co2.csv")
	p.Output.Dir = filepath.Join(dir, "out")
	p.RejectLog = filepath.Join(dir, "rejects.csv")

	return &runner{p: p, now: func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }}, dir
}

func TestRunner_AllStages(t *testing.T) {
	Convey("Given raw listing and emission files", t, func() {
		r, dir := newTestRunner(t)
		out := r.p.Output
		ctx := context.Background()

		Convey("When every stage runs", func() {
			So(r.run(ctx, stageAll), ShouldBeNil)

			Convey("Then the cleaned tables keep the usable rows", func() {
				ls, err := dataset.ReadListings(ctx, file.NewLocal(filepath.Join(out.Dir, out.Files.ListingsClean)))
				So(err, ShouldBeNil)
				So(len(ls), ShouldEqual, 3)
				So(ls[0].Brand, ShouldEqual, "bmw")

				es, err := dataset.ReadEmissions(ctx, file.NewLocal(filepath.Join(out.Dir, out.Files.EmissionsClean)))
				So(err, ShouldBeNil)
				So(len(es), ShouldEqual, 2)
				So(es[1].CO2, ShouldEqual, 118.0)
			})

			Convey("Then every kept listing is merged exactly once", func() {
				ms, err := dataset.ReadMerged(ctx, file.NewLocal(filepath.Join(out.Dir, out.Files.Merged)))
				So(err, ShouldBeNil)
				So(len(ms), ShouldEqual, 3)

				So(ms[0].ModelBase, ShouldEqual, "3 series")
				So(ms[0].HasCO2, ShouldBeTrue)
				So(*ms[0].CO2, ShouldEqual, 134.0)
				So(ms[0].CarAge, ShouldEqual, 6)
				So(ms[0].PriceBand, ShouldEqual, "20-30k")

				So(ms[1].ModelBase, ShouldEqual, "golf")
				So(*ms[1].CO2, ShouldEqual, 118.0)

				So(ms[2].HasCO2, ShouldBeFalse)
				So(ms[2].CO2, ShouldBeNil)
				So(ms[2].PowerBand, ShouldEqual, "150-250")
			})

			Convey("Then the KPI tables are written", func() {
				So(readCSV(t, filepath.Join(out.Dir, out.Files.KPIPriceByFuel)), ShouldResemble, [][]string{
					{"fuel_type_clean", "listings", "avg_price", "median_price"},
					{"diesel", "2", "18000", "18000"},
					{"electric", "1", "42000", "42000"},
				})
				So(readCSV(t, filepath.Join(out.Dir, out.Files.KPIEVShareByYear)), ShouldResemble, [][]string{
					{"year", "total_listings", "ev_listings", "ev_share_pct"},
					{"2018", "2", "0", "0"},
					{"2021", "1", "1", "100"},
				})
				So(readCSV(t, filepath.Join(out.Dir, out.Files.KPICO2ByFuel)), ShouldResemble, [][]string{
					{"fuel_type_clean", "vehicles_with_co2", "avg_co2", "median_co2"},
					{"diesel", "2", "126", "126"},
				})
				So(readCSV(t, filepath.Join(out.Dir, out.Files.KPITopBrands)), ShouldResemble, [][]string{
					{"brand", "listings", "avg_price"},
					{"bmw", "1", "21000"},
					{"tesla", "1", "42000"},
					{"volkswagen", "1", "15000"},
				})
			})

			Convey("Then every dropped row is in the reject log", func() {
				rows := readCSV(t, filepath.Join(dir, "rejects.csv"))
				So(len(rows), ShouldEqual, 4)
				var got []string
				for _, row := range rows[1:] {
					got = append(got, strings.Join(row, ","))
				}
				So(got, ShouldContain, "listings,price_out_of_range,5")
				So(got, ShouldContain, "listings,missing_year,6")
				So(got, ShouldContain, "emissions,duplicate,4")
			})
		})

		Convey("When the reference year is unset", func() {
			r.p.ReferenceYear = 0
			So(r.run(ctx, stageAll), ShouldBeNil)

			Convey("Then car_age uses the runner clock", func() {
				ms, err := dataset.ReadMerged(ctx, file.NewLocal(filepath.Join(out.Dir, out.Files.Merged)))
				So(err, ShouldBeNil)
				So(ms[0].CarAge, ShouldEqual, 12)
			})
		})

		Convey("When kpi runs before merge", func() {
			err := r.run(ctx, stageKPI)

			Convey("Then it fails on the missing merged file", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "kpi:")
			})
		})

		Convey("When clean then merge run separately", func() {
			So(r.run(ctx, stageClean), ShouldBeNil)
			_, err := os.Stat(filepath.Join(out.Dir, out.Files.Merged))
			So(os.IsNotExist(err), ShouldBeTrue)

			So(r.run(ctx, stageMerge), ShouldBeNil)
			_, err = os.Stat(filepath.Join(out.Dir, out.Files.Merged))
			So(err, ShouldBeNil)
		})

		Convey("When the listings input is missing", func() {
			r.p.Listings.Source.File.Path = filepath.Join(dir, "nope.csv")
			err := r.run(ctx, stageClean)

			Convey("Then clean fails and writes nothing", func() {
				So(err, ShouldNotBeNil)
				_, statErr := os.Stat(filepath.Join(out.Dir, out.Files.ListingsClean))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}

func TestStagesFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{stageClean, stageMerge, stageKPI}, false},
		{"all", []string{stageClean, stageMerge, stageKPI}, false},
		{"clean", []string{stageClean}, false},
		{" Merge ", []string{stageMerge}, false},
		{"kpi", []string{stageKPI}, false},
		{"load", nil, true},
	}
	for _, tc := range cases {
		got, err := stagesFor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("stagesFor(%q) err = %v; wantErr %v", tc.in, err, tc.wantErr)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("stagesFor(%q) = %v; want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("stagesFor(%q) = %v; want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestSetupMetrics_Disabled(t *testing.T) {
	if flush := setupMetrics("carprep", config.Metrics{Backend: "none"}, "run-1", false); flush != nil {
		t.Fatalf("setupMetrics(none) returned a flush func")
	}
	if flush := setupMetrics("carprep", config.Metrics{Backend: "graphite"}, "run-1", false); flush != nil {
		t.Fatalf("setupMetrics(unknown) returned a flush func")
	}
}
