package http

import (
	"log/slog"
	"net/http"

	"onlyfunds/internal/core"
	"onlyfunds/internal/log"
	"onlyfunds/internal/validate"
)

// handleListBudgets returns the user's budgets, filtered by period when
// month/year are supplied.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request, userID string) {
	set := s.stores.For(userID)

	query := r.URL.Query()
	if query.Get("month") == "" && query.Get("year") == "" {
		NewJSONResponse().Payload(budgetViews(set.Budgets.All())).Write(w)
		return
	}

	params := ParseMonthParams(query)
	if err := params.Validate(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	NewJSONResponse().Payload(budgetViews(set.Budgets.ForPeriod(params.Month, params.Year))).Write(w)
}

// handleSetBudget creates or replaces the budget for a category slot.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request, userID string) {
	var in validate.BudgetInput
	if err := DecodeJSON(r, &in); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	b, fieldErrs, err := s.budgets.SetBudget(r.Context(), userID, in)
	if fieldErrs != nil {
		ValidationErrorResponse(fieldErrs).Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Set budget failed",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentBudget,
			log.FieldError, err)
		InternalServerError("could not save budget").Write(w)
		return
	}

	s.invalidateUser(r.Context(), userID)

	views := budgetViews([]core.Budget{b})
	NewJSONResponse().Status(http.StatusCreated).Payload(views[0]).Write(w)
}

// handleRemoveBudget deletes a budget by id; removing an unknown id
// succeeds.
func (s *Server) handleRemoveBudget(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	if id == "" {
		BadRequestError("missing budget id").Write(w)
		return
	}

	if err := s.budgets.RemoveBudget(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Remove budget failed",
			log.FieldUserID, userID,
			log.FieldBudgetID, id,
			log.FieldComponent, log.ComponentBudget,
			log.FieldError, err)
		InternalServerError("could not remove budget").Write(w)
		return
	}

	s.invalidateUser(r.Context(), userID)

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
