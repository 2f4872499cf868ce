package trends

import (
	"errors"
	"testing"
)

func TestResolveDetachedPrefersExactTypeAndProvider(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:REBGV", "detached")
	if err != nil {
		t.Fatal(err)
	}
	if report.Provider != "crea" {
		t.Fatalf("crea outranks local_board, got %s", report.Provider)
	}
	if report.PropertyType != "detached" {
		t.Fatalf("exact type must beat composite fallback, got %s", report.PropertyType)
	}
	if report.Value != 1527000 {
		t.Fatalf("unexpected benchmark value: %v", report.Value)
	}
	if report.EstimateRange == nil || report.EstimateRange.Low != 1480000 {
		t.Fatalf("estimate range should surface: %+v", report.EstimateRange)
	}
	if report.IngestedAt == nil {
		t.Fatal("ingestion timestamp should surface")
	}
}

func TestResolveCompositeOnlyMatchesComposite(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:REBGV", "")
	if err != nil {
		t.Fatal(err)
	}
	if report.PropertyType != TypeComposite {
		t.Fatalf("default request must resolve composite, got %s", report.PropertyType)
	}
	if report.Provider != "crea" || report.Value != 1190200 {
		t.Fatalf("unexpected primary: %s %v", report.Provider, report.Value)
	}
}

func TestResolveUnrequestedTypeFallsBackToComposite(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:REBGV", "townhouse")
	if err != nil {
		t.Fatal(err)
	}
	if report.PropertyType != TypeComposite {
		t.Fatalf("missing type must fall back to composite, got %s", report.PropertyType)
	}
}

func TestResolveGeographyFallback(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:TRREB", "composite")
	if err != nil {
		t.Fatal(err)
	}
	if report.GeoCode != "metro:toronto" {
		t.Fatalf("expected metro fallback, got %s", report.GeoCode)
	}
}

func TestResolveUnknownGeographyPreservesRequestedCode(t *testing.T) {
	r := NewResolver(SeedSeries())
	_, err := r.Resolve("board:NOPE", "composite")
	var nc *NoCoverageError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NoCoverageError, got %v", err)
	}
	if nc.GeoCode != "board:NOPE" {
		t.Fatalf("requested code must be preserved, got %s", nc.GeoCode)
	}
}

func TestResolveEmptyGeoCode(t *testing.T) {
	r := NewResolver(SeedSeries())
	if _, err := r.Resolve("  ", "composite"); err != ErrEmptyGeoCode {
		t.Fatalf("expected ErrEmptyGeoCode, got %v", err)
	}
}

func TestResolveSourcesOrderedByPrecedence(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:REBGV", "detached")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Sources) == 0 {
		t.Fatal("sources must list every matching series")
	}
	last := -1
	sawUnranked := false
	for _, src := range report.Sources {
		if src.Precedence == nil {
			sawUnranked = true
			continue
		}
		if sawUnranked {
			t.Fatal("unranked providers must sort last")
		}
		if *src.Precedence < 1 {
			t.Fatalf("precedence must be 1-based, got %d", *src.Precedence)
		}
		if *src.Precedence < last {
			t.Fatalf("sources out of order: %d after %d", *src.Precedence, last)
		}
		last = *src.Precedence
	}
	if !sawUnranked {
		t.Fatal("fixture includes an unranked provider; it must appear with null precedence")
	}
}

func TestResolveSupplementaryExcludesBenchmark(t *testing.T) {
	r := NewResolver(SeedSeries())
	report, err := r.Resolve("board:REBGV", "composite")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Supplementary) == 0 {
		t.Fatal("expected supplementary metrics")
	}
	for _, sup := range report.Supplementary {
		if sup.Metric == MetricBenchmarkPrice {
			t.Fatal("benchmark series must not appear as supplementary")
		}
		if len(sup.History) == 0 {
			t.Fatalf("supplementary %s missing history", sup.Metric)
		}
	}
}

func TestResolveDefaultCurrency(t *testing.T) {
	series := []Series{{
		Provider:     "crea",
		GeoCode:      "board:X",
		GeoName:      "X",
		PropertyType: "composite",
		Metric:       MetricBenchmarkPrice,
		Period:       "2026-07",
		Value:        100,
	}}
	report, err := NewResolver(series).Resolve("board:X", "")
	if err != nil {
		t.Fatal(err)
	}
	if report.Currency != "CAD" {
		t.Fatalf("default currency must be CAD, got %s", report.Currency)
	}
	if report.Disclosure == "" {
		t.Fatal("disclosure text must always be present")
	}
}
