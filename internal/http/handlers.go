package http

import (
	"net/http"

	"onlyfunds/internal/core"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// metricsPayload reports basic operational counters.
type metricsPayload struct {
	TotalRequests         int64 `json:"total_requests"`
	AverageResponseTimeUs int64 `json:"average_response_time_us"`
	RateLimitedClients    int   `json:"rate_limited_clients"`
	ProgressCacheEntries  int   `json:"progress_cache_entries"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.tracer.GetMetrics()
	NewJSONResponse().Payload(metricsPayload{
		TotalRequests:         m.TotalRequests,
		AverageResponseTimeUs: m.AverageResponseTime,
		RateLimitedClients:    s.rateLimiter.ActiveClients(),
		ProgressCacheEntries:  s.progressCache.Size(),
	}).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Payload(categoryViews(core.Catalog())).Write(w)
}
