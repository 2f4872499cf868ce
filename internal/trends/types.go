package trends

import (
	"errors"
	"fmt"
	"time"
)

// TrendPoint is a single historical observation, passed through as stored.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ValueRange is an optional low/high estimate band on a series.
type ValueRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Series is one immutable benchmark or supplementary metric series from a
// data provider.
type Series struct {
	Provider     string
	GeoCode      string
	GeoName      string
	PropertyType string
	Metric       string
	Period       string
	Value        float64
	Currency     string
	YoYChange    *float64
	LastUpdated  string
	Coverage     string
	Licensed     bool
	Range        *ValueRange
	IngestedAt   *time.Time
	SourceDate   string
	History      []TrendPoint
}

// SourceRef annotates one matching series in the response source list.
type SourceRef struct {
	Provider   string `json:"provider"`
	Precedence *int   `json:"precedence"`
	Licensed   bool   `json:"licensed"`
}

// Supplementary is a non-benchmark metric series included alongside the
// primary response.
type Supplementary struct {
	Metric       string       `json:"metric"`
	PropertyType string       `json:"propertyType"`
	Period       string       `json:"period"`
	Value        float64      `json:"value"`
	History      []TrendPoint `json:"history"`
}

// Report is the assembled market trend response for one geography.
type Report struct {
	GeoCode       string          `json:"geoCode"`
	GeoName       string          `json:"geoName"`
	PropertyType  string          `json:"propertyType"`
	Metric        string          `json:"metric"`
	Period        string          `json:"period"`
	Value         float64         `json:"value"`
	Currency      string          `json:"currency"`
	YoYChange     *float64        `json:"yoyChange,omitempty"`
	LastUpdated   string          `json:"lastUpdated,omitempty"`
	Provider      string          `json:"provider"`
	History       []TrendPoint    `json:"history"`
	Sources       []SourceRef     `json:"sources"`
	Disclosure    string          `json:"disclosure"`
	Supplementary []Supplementary `json:"supplementaryMetrics"`
	EstimateRange *ValueRange     `json:"estimateRange,omitempty"`
	IngestedAt    *time.Time      `json:"ingestedAt,omitempty"`
}

// ErrEmptyGeoCode is an input error: the geography code is required.
var ErrEmptyGeoCode = errors.New("trends: geography code is required")

// NoCoverageError reports that no series exists for the requested geography
// or property type. The originally requested code is preserved as context.
type NoCoverageError struct {
	GeoCode string
}

func (e *NoCoverageError) Error() string {
	return fmt.Sprintf("trends: no coverage for %s", e.GeoCode)
}
