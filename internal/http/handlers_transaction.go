package http

import (
	"log/slog"
	"net/http"

	"onlyfunds/internal/core"
	"onlyfunds/internal/log"
	"onlyfunds/internal/validate"
)

// handleListTransactions returns the user's transactions, filtered by
// period when month/year are supplied.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, userID string) {
	set := s.stores.For(userID)

	query := r.URL.Query()
	if query.Get("month") == "" && query.Get("year") == "" {
		NewJSONResponse().Payload(transactionViews(set.Transactions.All())).Write(w)
		return
	}

	params := ParseMonthParams(query)
	if err := params.Validate(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	NewJSONResponse().Payload(transactionViews(set.Transactions.ForPeriod(params.Month, params.Year))).Write(w)
}

// handleAddTransaction records a new income or expense.
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var in validate.TransactionInput
	if err := DecodeJSON(r, &in); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	t, fieldErrs, err := s.transactions.AddTransaction(r.Context(), userID, in)
	if fieldErrs != nil {
		ValidationErrorResponse(fieldErrs).Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Add transaction failed",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentTransaction,
			log.FieldError, err)
		InternalServerError("could not save transaction").Write(w)
		return
	}

	s.invalidateUser(r.Context(), userID)

	views := transactionViews([]core.Transaction{t})
	NewJSONResponse().Status(http.StatusCreated).Payload(views[0]).Write(w)
}

// handleRemoveTransaction deletes a transaction by id; removing an unknown
// id succeeds.
func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	if id == "" {
		BadRequestError("missing transaction id").Write(w)
		return
	}

	if err := s.transactions.RemoveTransaction(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Remove transaction failed",
			log.FieldUserID, userID,
			log.FieldTransactionID, id,
			log.FieldComponent, log.ComponentTransaction,
			log.FieldError, err)
		InternalServerError("could not remove transaction").Write(w)
		return
	}

	s.invalidateUser(r.Context(), userID)

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
