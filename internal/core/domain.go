package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Utilities     Category = "utilities"
	Entertainment Category = "entertainment"
	Health        Category = "health"
	Shopping      Category = "shopping"
	Education     Category = "education"
	Other         Category = "other"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// Category is a closed set of expense categories used as the join key
	// between budgets and transactions.
	Category string

	// TransactionType determines the sign of a transaction when aggregating.
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single recorded income or expense event.
	Transaction struct {
		ID       string
		Category Category
		Amount   Money
		Type     TransactionType
		Date     Date
		UserID   string
	}

	// Budget is a spending limit for one category in one calendar month.
	Budget struct {
		ID       string
		Category Category
		Amount   Money
		Month    int // 1-12
		Year     int
		UserID   string
	}
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyUserID     = errors.New("empty user id")
)

// CategoryInfo carries display metadata for a catalog entry.
type CategoryInfo struct {
	Category Category
	Label    string
}

// catalog is the fixed, ordered set of known categories.
var catalog = []CategoryInfo{
	{Food, "Food & Dining"},
	{Transport, "Transport"},
	{Utilities, "Utilities"},
	{Entertainment, "Entertainment"},
	{Health, "Health"},
	{Shopping, "Shopping"},
	{Education, "Education"},
	{Other, "Other"},
}

// Catalog returns the ordered category catalog.
func Catalog() []CategoryInfo {
	out := make([]CategoryInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParseCategory maps a string to a known category, falling back to Other
// for anything outside the closed set.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range catalog {
		if info.Category == c {
			return c
		}
	}
	return Other
}

func (c Category) Validate() error {
	for _, info := range catalog {
		if info.Category == c {
			return nil
		}
	}
	return ErrInvalidCategory
}

// Label returns the display label for the category, or the raw value when
// the category is unknown.
func (c Category) Label() string {
	for _, info := range catalog {
		if info.Category == c {
			return info.Label
		}
	}
	return string(c)
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the calendar month 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// InPeriod reports whether the date falls in the given calendar month and
// year. Bucketing is by calendar month, not a rolling 30-day window.
func (d Date) InPeriod(month, year int) bool {
	return d.Month() == month && d.Year() == year
}

func (t Transaction) Validate() error {
	if err := t.Category.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

func (b Budget) Validate() error {
	if err := b.Category.Validate(); err != nil {
		return err
	}
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.Year < 1000 || b.Year > 9999 {
		return ErrInvalidYear
	}
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

// Key identifies the unique budget slot. Set operations upsert on this key
// rather than duplicate.
func (b Budget) Key() BudgetKey {
	return BudgetKey{UserID: b.UserID, Category: b.Category, Month: b.Month, Year: b.Year}
}

// BudgetKey is the comparable upsert key (userId, category, month, year).
type BudgetKey struct {
	UserID   string
	Category Category
	Month    int
	Year     int
}
