package trends

import "time"

func ptrF(v float64) *float64     { return &v }
func ptrT(v time.Time) *time.Time { return &v }

// SeedSeries returns the fixture trend dataset. Values are passed through to
// responses unmodified.
func SeedSeries() []Series {
	rebgvIngested := time.Date(2026, 8, 5, 3, 15, 0, 0, time.UTC)
	return []Series{
		{
			Provider:     "crea",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "composite",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-07",
			Value:        1190200,
			Currency:     "CAD",
			YoYChange:    ptrF(-2.1),
			LastUpdated:  "2026-08-01",
			Coverage:     "All residential property types, Greater Vancouver board area",
			Licensed:     true,
			SourceDate:   "2026-08-01",
			History: []TrendPoint{
				{Period: "2026-04", Value: 1201500},
				{Period: "2026-05", Value: 1198400},
				{Period: "2026-06", Value: 1193800},
				{Period: "2026-07", Value: 1190200},
			},
		},
		{
			Provider:     "crea",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "detached",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-07",
			Value:        1527000,
			Currency:     "CAD",
			YoYChange:    ptrF(-3.4),
			LastUpdated:  "2026-08-01",
			Coverage:     "Detached homes, Greater Vancouver board area",
			Licensed:     true,
			Range:        &ValueRange{Low: 1480000, High: 1575000},
			IngestedAt:   ptrT(rebgvIngested),
			SourceDate:   "2026-08-01",
			History: []TrendPoint{
				{Period: "2026-05", Value: 1541200},
				{Period: "2026-06", Value: 1533500},
				{Period: "2026-07", Value: 1527000},
			},
		},
		{
			Provider:     "local_board",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "detached",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-07",
			Value:        1534900,
			Currency:     "CAD",
			YoYChange:    ptrF(-3.1),
			LastUpdated:  "2026-08-03",
			Coverage:     "Detached homes, REBGV MLS",
			Licensed:     false,
			SourceDate:   "2026-08-03",
			History: []TrendPoint{
				{Period: "2026-06", Value: 1540100},
				{Period: "2026-07", Value: 1534900},
			},
		},
		{
			Provider:     "zealty",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "composite",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-07",
			Value:        1187750,
			SourceDate:   "2026-08-02",
			History: []TrendPoint{
				{Period: "2026-07", Value: 1187750},
			},
		},
		{
			Provider:     "local_board",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "composite",
			Metric:       "sales",
			Period:       "2026-07",
			Value:        2412,
			SourceDate:   "2026-08-03",
			History: []TrendPoint{
				{Period: "2026-05", Value: 2688},
				{Period: "2026-06", Value: 2530},
				{Period: "2026-07", Value: 2412},
			},
		},
		{
			Provider:     "local_board",
			GeoCode:      "board:REBGV",
			GeoName:      "Greater Vancouver",
			PropertyType: "composite",
			Metric:       "new_listings",
			Period:       "2026-07",
			Value:        5321,
			SourceDate:   "2026-08-03",
			History: []TrendPoint{
				{Period: "2026-06", Value: 5650},
				{Period: "2026-07", Value: 5321},
			},
		},
		{
			Provider:     "teranet",
			GeoCode:      "metro:vancouver",
			GeoName:      "Metro Vancouver",
			PropertyType: "composite",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-06",
			Value:        1152300,
			Currency:     "CAD",
			YoYChange:    ptrF(-1.6),
			LastUpdated:  "2026-07-20",
			Coverage:     "Repeat-sales index, Vancouver CMA",
			Licensed:     true,
			SourceDate:   "2026-07-20",
			History: []TrendPoint{
				{Period: "2026-05", Value: 1158900},
				{Period: "2026-06", Value: 1152300},
			},
		},
		{
			Provider:     "crea",
			GeoCode:      "metro:toronto",
			GeoName:      "Greater Toronto",
			PropertyType: "composite",
			Metric:       MetricBenchmarkPrice,
			Period:       "2026-07",
			Value:        1074800,
			Currency:     "CAD",
			YoYChange:    ptrF(0.8),
			LastUpdated:  "2026-08-01",
			Coverage:     "All residential property types, Toronto CMA",
			Licensed:     true,
			SourceDate:   "2026-08-01",
			History: []TrendPoint{
				{Period: "2026-06", Value: 1071300},
				{Period: "2026-07", Value: 1074800},
			},
		},
		{
			Provider:     "statcan",
			GeoCode:      "metro:toronto",
			GeoName:      "Greater Toronto",
			PropertyType: "composite",
			Metric:       "new_listings",
			Period:       "2026-06",
			Value:        17230,
			SourceDate:   "2026-07-15",
			History: []TrendPoint{
				{Period: "2026-05", Value: 16890},
				{Period: "2026-06", Value: 17230},
			},
		},
	}
}
