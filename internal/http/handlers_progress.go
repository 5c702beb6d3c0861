package http

import (
	"log/slog"
	"net/http"

	"onlyfunds/internal/log"
)

// handleProgress reports spending against each budget for the requested
// period. Results are cached per user and period; every mutation on the
// user's data drops their cached entries.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request, userID string) {
	params := ParseMonthParams(r.URL.Query())
	if err := params.Validate(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := progressCacheKey(userID, params.Year, params.Month)
	if cached, ok := s.progressCache.Get(key); ok {
		NewJSONResponse().Payload(progressViews(cached)).Write(w)
		return
	}

	set := s.stores.For(userID)
	progress := set.Budgets.Recompute(set.Transactions.All(), params.Month, params.Year)
	s.progressCache.Set(key, progress)

	slog.DebugContext(r.Context(), "Computed budget progress",
		log.FieldUserID, userID,
		log.FieldMonth, params.Month,
		log.FieldYear, params.Year,
		log.FieldComponent, log.ComponentProgress,
		"budgets", len(progress))

	NewJSONResponse().Payload(progressViews(progress)).Write(w)
}

// handleRefresh re-fetches the user's collections from the backend so the
// stores reflect writes made by other devices.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.refresher.Refresh(r.Context(), userID); err != nil {
		slog.ErrorContext(r.Context(), "Refresh failed",
			log.FieldUserID, userID,
			log.FieldOperation, log.OpRefresh,
			log.FieldError, err)
		InternalServerError("could not refresh from backend").Write(w)
		return
	}

	s.invalidateUser(r.Context(), userID)

	set := s.stores.For(userID)
	NewJSONResponse().Payload(map[string]int{
		"budgets":      set.Budgets.Len(),
		"transactions": set.Transactions.Len(),
	}).Write(w)
}
