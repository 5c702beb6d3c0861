package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"onlyfunds/internal/core"
	"onlyfunds/internal/log"
)

// recurringInput is the payload for creating a recurring template.
type recurringInput struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Every       string `json:"every"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	templates, err := s.repo.ListRecurring(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List recurring failed",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentRecurring,
			log.FieldError, err)
		InternalServerError("could not list recurring transactions").Write(w)
		return
	}

	NewJSONResponse().Payload(recurringViews(templates)).Write(w)
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	var in recurringInput
	if err := DecodeJSON(r, &in); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		ErrorResponse(http.StatusUnprocessableEntity, "amount must be a positive decimal").Write(w)
		return
	}

	start, err := time.Parse(viewDateLayout, strings.TrimSpace(in.StartDate))
	if err != nil {
		ErrorResponse(http.StatusUnprocessableEntity, "start_date must be YYYY-MM-DD").Write(w)
		return
	}

	rt := core.RecurringTransaction{
		StartDate:   core.Date{Time: start},
		Every:       core.RepetitionType(strings.ToLower(strings.TrimSpace(in.Every))),
		Description: strings.TrimSpace(in.Description),
		Category:    core.ParseCategory(in.Category),
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(in.Type))),
		UserID:      userID,
	}

	if in.EndDate != "" {
		end, err := time.Parse(viewDateLayout, strings.TrimSpace(in.EndDate))
		if err != nil {
			ErrorResponse(http.StatusUnprocessableEntity, "end_date must be YYYY-MM-DD").Write(w)
			return
		}
		rt.EndDate = core.Date{Time: end}
	}

	if err := rt.Validate(); err != nil {
		ErrorResponse(http.StatusUnprocessableEntity, err.Error()).Write(w)
		return
	}

	id, err := s.repo.CreateRecurring(r.Context(), rt)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create recurring failed",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentRecurring,
			log.FieldError, err)
		InternalServerError("could not create recurring transaction").Write(w)
		return
	}
	rt.ID = id

	views := recurringViews([]core.RecurringTransaction{rt})
	NewJSONResponse().Status(http.StatusCreated).Payload(views[0]).Write(w)
}

func (s *Server) handleDeactivateRecurring(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		BadRequestError("recurring id must be numeric").Write(w)
		return
	}

	if err := s.repo.DeactivateRecurring(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Deactivate recurring failed",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentRecurring,
			"recurring_id", id,
			log.FieldError, err)
		InternalServerError("could not deactivate recurring transaction").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
