// Package config defines the configuration model for the car data preparation
// pipeline. Field names mirror the keys used in pipeline files under
// configs/ (YAML or JSON).
//
// Example (trimmed):
//
//	job: carprep
//	reference_year: 2024
//	listings:
//	  source: { kind: file, file: { path: Datasets/used_cars_germany_2023.csv } }
//	  parser: { kind: csv, options: { trim_space: true } }
//	emissions:
//	  source: { kind: file, file: { path: Datasets/co2_emission_train.csv } }
//	  parser: { kind: csv }
//	output: { kind: csv, dir: Datasets }
package config

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for metrics labeling.
	Job string `json:"job"`

	// ReferenceYear is the calendar year car_age is computed against. Zero
	// means the current year at run time, which makes outputs depend on the
	// wall clock.
	ReferenceYear int `json:"reference_year"`

	// Listings is the primary dataset (used-car offers).
	Listings Input `json:"listings"`

	// Emissions is the secondary dataset (CO2 reference entries).
	Emissions Input `json:"emissions"`

	Output  Output  `json:"output"`
	Rules   Rules   `json:"rules"`
	Metrics Metrics `json:"metrics"`

	// RejectLog, when set, is the path of a CSV file receiving one line per
	// dropped row. Empty disables it.
	RejectLog string `json:"reject_log"`
}

// Input pairs a source with the parser reading it.
type Input struct {
	Source Source `json:"source"`
	Parser Parser `json:"parser"`
}

// Source identifies where input bytes come from.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string     `json:"kind"`
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path"`
}

// Parser selects how raw bytes become rows.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is interpreted by the parser. For CSV:
	//   comma (string), trim_space (bool), lazy_quotes (bool),
	//   header_map (object: source header -> column)
	Options Options `json:"options"`
}

// Output selects the sink for every table the pipeline writes.
type Output struct {
	// Kind selects the storage backend. Current value: "csv".
	Kind  string      `json:"kind"`
	Dir   string      `json:"dir"`
	Files OutputFiles `json:"files"`
}

// OutputFiles names each output table, relative to Output.Dir.
type OutputFiles struct {
	ListingsClean    string `json:"listings_clean"`
	EmissionsClean   string `json:"emissions_clean"`
	Merged           string `json:"merged"`
	KPIPriceByFuel   string `json:"kpi_price_by_fuel"`
	KPIEVShareByYear string `json:"kpi_ev_share_by_year"`
	KPICO2ByFuel     string `json:"kpi_co2_by_fuel"`
	KPITopBrands     string `json:"kpi_top_brands"`
}

// Rules holds the dataset-level sanity rules applied while cleaning and
// aggregating.
type Rules struct {
	// PriceMin and PriceMax bound listing prices, both exclusive.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	// TopBrands caps the brand KPI table.
	TopBrands int `json:"top_brands"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is one of "none", "pushgateway", "datadog".
	Backend        string `json:"backend"`
	PushgatewayURL string `json:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr"`
	Namespace      string `json:"namespace"`
}

// New returns a Pipeline populated with defaults. Loaded files and
// environment variables are layered on top.
func New() *Pipeline {
	return &Pipeline{
		Job: "carprep",
		Listings: Input{
			Source: Source{Kind: "file", File: SourceFile{Path: "Datasets/used_cars_germany_2023.csv"}},
			Parser: Parser{Kind: "csv", Options: Options{}},
		},
		Emissions: Input{
			Source: Source{Kind: "file", File: SourceFile{Path: "Datasets/co2_emission_train.csv"}},
			Parser: Parser{Kind: "csv", Options: Options{}},
		},
		Output: Output{
			Kind: "csv",
			Dir:  "Datasets",
			Files: OutputFiles{
				ListingsClean:    "used_cars_clean.csv",
				EmissionsClean:   "co2_clean.csv",
				Merged:           "merged_powerbi_ready.csv",
				KPIPriceByFuel:   "kpi_price_by_fuel.csv",
				KPIEVShareByYear: "kpi_ev_share_by_year.csv",
				KPICO2ByFuel:     "kpi_co2_by_fuel.csv",
				KPITopBrands:     "kpi_top_brands.csv",
			},
		},
		Rules: Rules{
			PriceMin:  0,
			PriceMax:  300000,
			TopBrands: 15,
		},
		Metrics: Metrics{
			Backend:   "none",
			Namespace: "carprep",
		},
	}
}
