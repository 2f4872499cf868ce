package trends

import (
	"sort"
	"strings"
)

// MetricBenchmarkPrice is the primary housing-price metric used as the
// default response.
const MetricBenchmarkPrice = "benchmark_price"

// TypeComposite is the all-property-types benchmark and the fallback type.
const TypeComposite = "composite"

const defaultCurrency = "CAD"

const disclosureText = "Benchmark values are produced by third-party providers and may lag the market. " +
	"Figures are indicative only and do not constitute an appraisal."

// providerPrecedence ranks data providers; earlier entries outrank later
// ones and unknown providers rank last.
var providerPrecedence = []string{"crea", "local_board", "teranet", "statcan"}

// geoFallbacks maps board-level codes to broader metro-area codes tried when
// the board itself has no coverage.
var geoFallbacks = map[string][]string{
	"board:REBGV": {"metro:vancouver"},
	"board:FVREB": {"metro:vancouver"},
	"board:TRREB": {"metro:toronto"},
	"board:MREB":  {"metro:toronto"},
}

// Resolver selects the best benchmark series from a fixed trend dataset.
type Resolver struct {
	series []Series
}

// NewResolver wraps the fixture dataset. The dataset is read-only.
func NewResolver(series []Series) *Resolver {
	return &Resolver{series: series}
}

// Resolve walks the geography fallback chain, picks the primary benchmark
// series by provider precedence and exact-type preference, and assembles the
// full report.
func (r *Resolver) Resolve(geoCode, propertyType string) (*Report, error) {
	geoCode = strings.TrimSpace(geoCode)
	if geoCode == "" {
		return nil, ErrEmptyGeoCode
	}
	propertyType = strings.TrimSpace(strings.ToLower(propertyType))
	if propertyType == "" {
		propertyType = TypeComposite
	}

	resolved, matches := r.selectGeography(geoCode)
	if len(matches) == 0 {
		return nil, &NoCoverageError{GeoCode: geoCode}
	}

	primary := pickPrimary(matches, propertyType)
	if primary == nil {
		return nil, &NoCoverageError{GeoCode: geoCode}
	}

	report := &Report{
		GeoCode:       resolved,
		GeoName:       primary.GeoName,
		PropertyType:  primary.PropertyType,
		Metric:        primary.Metric,
		Period:        primary.Period,
		Value:         primary.Value,
		Currency:      currencyOf(*primary),
		YoYChange:     primary.YoYChange,
		LastUpdated:   primary.LastUpdated,
		Provider:      primary.Provider,
		History:       primary.History,
		Sources:       sourceList(matches),
		Disclosure:    disclosureText,
		Supplementary: supplementaryList(matches),
		EstimateRange: primary.Range,
		IngestedAt:    primary.IngestedAt,
	}
	return report, nil
}

// selectGeography scans the search order and returns the first geography
// that has at least one series, along with its matches.
func (r *Resolver) selectGeography(geoCode string) (string, []Series) {
	order := append([]string{geoCode}, geoFallbacks[geoCode]...)
	for _, code := range order {
		var matches []Series
		for _, s := range r.series {
			if s.GeoCode == code {
				matches = append(matches, s)
			}
		}
		if len(matches) > 0 {
			return code, matches
		}
	}
	return geoCode, nil
}

// pickPrimary restricts to benchmark-price series that satisfy the
// property-type fallback policy, then orders by provider precedence with
// exact-type preference as the tie break.
func pickPrimary(matches []Series, propertyType string) *Series {
	var candidates []Series
	for _, s := range matches {
		if s.Metric != MetricBenchmarkPrice {
			continue
		}
		if propertyType == TypeComposite {
			if s.PropertyType == TypeComposite {
				candidates = append(candidates, s)
			}
			continue
		}
		if s.PropertyType == propertyType || s.PropertyType == TypeComposite {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := providerRank(candidates[i].Provider), providerRank(candidates[j].Provider)
		if ri != rj {
			return ri < rj
		}
		return exactness(candidates[i], propertyType) < exactness(candidates[j], propertyType)
	})
	return &candidates[0]
}

func providerRank(provider string) int {
	for i, p := range providerPrecedence {
		if p == provider {
			return i
		}
	}
	return len(providerPrecedence)
}

func exactness(s Series, propertyType string) int {
	if s.PropertyType == propertyType {
		return 0
	}
	return 1
}

func currencyOf(s Series) string {
	if s.Currency == "" {
		return defaultCurrency
	}
	return s.Currency
}

func sourceList(matches []Series) []SourceRef {
	ordered := make([]Series, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return providerRank(ordered[i].Provider) < providerRank(ordered[j].Provider)
	})
	refs := make([]SourceRef, 0, len(ordered))
	for _, s := range ordered {
		ref := SourceRef{Provider: s.Provider, Licensed: s.Licensed}
		if rank := providerRank(s.Provider); rank < len(providerPrecedence) {
			n := rank + 1
			ref.Precedence = &n
		}
		refs = append(refs, ref)
	}
	return refs
}

func supplementaryList(matches []Series) []Supplementary {
	out := []Supplementary{}
	for _, s := range matches {
		if s.Metric == MetricBenchmarkPrice {
			continue
		}
		out = append(out, Supplementary{
			Metric:       s.Metric,
			PropertyType: s.PropertyType,
			Period:       s.Period,
			Value:        s.Value,
			History:      s.History,
		})
	}
	return out
}
