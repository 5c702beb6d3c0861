package core

import (
	"errors"
	"strings"
)

const (
	Daily   RepetitionType = "daily"
	Weekly  RepetitionType = "weekly"
	Monthly RepetitionType = "monthly"
	Yearly  RepetitionType = "yearly"
)

// RepetitionType is the frequency of a recurring transaction template.
type RepetitionType string

// RecurringTransaction is a template that materializes into regular
// transactions (rent, salary, subscriptions) on a schedule.
type RecurringTransaction struct {
	ID          int64 // Database ID for operations
	StartDate   Date
	EndDate     Date // optional; zero means no end
	Every       RepetitionType
	Description string
	Category    Category
	Amount      Money
	Type        TransactionType
	UserID      string
}

func (rt RecurringTransaction) Validate() error {
	if err := rt.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}

	if !rt.EndDate.IsZero() {
		if !rt.EndDate.After(rt.StartDate.Time) && !rt.EndDate.Equal(rt.StartDate.Time) {
			return errors.New("end date must be after start date")
		}
	}

	switch rt.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return errors.New("invalid repetition type")
	}

	if len(strings.TrimSpace(rt.Description)) == 0 {
		return errors.New("empty description")
	}
	if len(rt.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}

	if err := rt.Category.Validate(); err != nil {
		return err
	}
	if rt.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if err := rt.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(rt.UserID) == "" {
		return ErrEmptyUserID
	}

	return nil
}
