package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to the operator but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "listings.source.file.path").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is a SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of a Pipeline. It never
// mutates p.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and identifies runs",
		})
	}

	switch {
	case p.ReferenceYear == 0:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "reference_year",
			Message:  "not set; car_age will use the current calendar year and outputs are not reproducible",
		})
	case p.ReferenceYear < 1900 || p.ReferenceYear > 2200:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "reference_year",
			Message:  fmt.Sprintf("implausible reference year %d", p.ReferenceYear),
		})
	}

	issues = append(issues, validateInput("listings", p.Listings)...)
	issues = append(issues, validateInput("emissions", p.Emissions)...)
	issues = append(issues, validateOutput(p.Output)...)
	issues = append(issues, validateRules(p.Rules)...)
	issues = append(issues, validateMetrics(p.Metrics)...)

	return issues
}

func validateInput(path string, in Input) []Issue {
	var issues []Issue

	switch strings.TrimSpace(in.Source.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, path + ".source.kind", "source.kind must not be empty"})
	case "file":
		if strings.TrimSpace(in.Source.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, path + ".source.file.path", "file source requires a non-empty path"})
		}
	default:
		issues = append(issues, Issue{SeverityError, path + ".source.kind", fmt.Sprintf("unsupported source kind %q", in.Source.Kind)})
	}

	switch strings.TrimSpace(in.Parser.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, path + ".parser.kind", "parser.kind must not be empty"})
	case "csv":
		if c := in.Parser.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{SeverityError, path + ".parser.options.comma", "comma must be a single character"})
		}
	default:
		issues = append(issues, Issue{SeverityError, path + ".parser.kind", fmt.Sprintf("unsupported parser kind %q", in.Parser.Kind)})
	}

	return issues
}

func validateOutput(o Output) []Issue {
	var issues []Issue

	if strings.TrimSpace(o.Kind) == "" {
		issues = append(issues, Issue{SeverityError, "output.kind", "output.kind must not be empty"})
	} else if o.Kind != "csv" {
		issues = append(issues, Issue{SeverityWarning, "output.kind", fmt.Sprintf("unknown output kind %q; ensure a matching storage backend is registered", o.Kind)})
	}

	files := map[string]string{
		"listings_clean":       o.Files.ListingsClean,
		"emissions_clean":      o.Files.EmissionsClean,
		"merged":               o.Files.Merged,
		"kpi_price_by_fuel":    o.Files.KPIPriceByFuel,
		"kpi_ev_share_by_year": o.Files.KPIEVShareByYear,
		"kpi_co2_by_fuel":      o.Files.KPICO2ByFuel,
		"kpi_top_brands":       o.Files.KPITopBrands,
	}
	seen := map[string]string{}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		f := strings.TrimSpace(files[name])
		if f == "" {
			issues = append(issues, Issue{SeverityError, "output.files." + name, "file name must not be empty"})
			continue
		}
		if other, dup := seen[f]; dup {
			issues = append(issues, Issue{SeverityError, "output.files." + name, fmt.Sprintf("file %q is also used by %s", f, other)})
			continue
		}
		seen[f] = name
	}
	return issues
}

func validateRules(r Rules) []Issue {
	var issues []Issue
	if r.PriceMax <= r.PriceMin {
		issues = append(issues, Issue{SeverityError, "rules.price_max", fmt.Sprintf("price_max (%v) must be greater than price_min (%v)", r.PriceMax, r.PriceMin)})
	}
	if r.TopBrands <= 0 {
		issues = append(issues, Issue{SeverityError, "rules.top_brands", "top_brands must be positive"})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if m.PushgatewayURL == "" {
			return []Issue{{SeverityWarning, "metrics.pushgateway_url", "empty; http://localhost:9091 will be used"}}
		}
	case "datadog":
		if m.DatadogAddr == "" {
			return []Issue{{SeverityWarning, "metrics.datadog_addr", "empty; 127.0.0.1:8125 will be used"}}
		}
	default:
		return []Issue{{SeverityWarning, "metrics.backend", fmt.Sprintf("unknown metrics backend %q; metrics disabled", m.Backend)}}
	}
	return nil
}
