package httpapi

import (
	"errors"
	"net/http"

	"hearth.homes/internal/obs"
	"hearth.homes/internal/trends"
)

// handleMarketTrends serves GET /market-trends?geoCode=...&propertyType=...
func (a *API) handleMarketTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	geoCode := r.URL.Query().Get("geoCode")
	propertyType := r.URL.Query().Get("propertyType")

	report, err := a.trends.Resolve(geoCode, propertyType)
	if err != nil {
		var noCov *trends.NoCoverageError
		switch {
		case errors.Is(err, trends.ErrEmptyGeoCode):
			obs.TrendLookup("bad_request")
			writeError(w, r, http.StatusBadRequest, codeValidation, "geoCode is required")
		case errors.As(err, &noCov):
			obs.TrendLookup("no_coverage")
			writeErrorPayload(w, r, http.StatusNotFound, map[string]any{
				"code":    codeNotFound,
				"error":   "no market data for the requested geography",
				"geoCode": noCov.GeoCode,
			})
		default:
			obs.TrendLookup("error")
			writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
		}
		return
	}

	obs.TrendLookup("ok")
	writeJSON(w, http.StatusOK, report)
}
