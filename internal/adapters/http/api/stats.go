package api

import "net/http"

// StatsProvider reports the engine's operational counters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves engine counters as a flat JSON object.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a stats handler over provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: provider}
}

// HandleStats handles GET /stats. Counters change on every scoring call,
// so responses are never cached.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
