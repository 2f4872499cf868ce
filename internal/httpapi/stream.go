package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream serves share lifecycle events over SSE for live dashboards.
func (a *API) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, codeInternal, "streaming unsupported")
		return
	}
	if a.stream == nil {
		writeError(w, r, http.StatusNotFound, codeNotFound, "event stream disabled")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := a.stream.Subscribe(r.Context())
	for evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: share\ndata: %s\n\n", payload)
		flusher.Flush()
	}
}
