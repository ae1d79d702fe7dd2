package stats

import (
	"encoding/json"
	"net/http"
)

// Handler exposes aggregated statistics as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a GET endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

type response struct {
	Columns []MetricColumn `json:"columns"`
	Years   []YearStats    `json:"years"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	columns, years, err := h.service.AggregatedStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(response{Columns: columns, Years: years})
}
