package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseMonthParams(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantYear  int
		wantMonth int
	}{
		{
			name:      "both values provided",
			query:     url.Values{"year": {"2024"}, "month": {"12"}},
			wantYear:  2024,
			wantMonth: 12,
		},
		{
			name:      "only year provided",
			query:     url.Values{"year": {"2023"}},
			wantYear:  2023,
			wantMonth: 0, // current month
		},
		{
			name:      "empty query uses defaults",
			query:     url.Values{},
			wantYear:  0, // current year
			wantMonth: 0,
		},
		{
			name:      "invalid values are ignored",
			query:     url.Values{"year": {"abc"}, "month": {"xyz"}},
			wantYear:  0,
			wantMonth: 0,
		},
	}

	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseMonthParams(tt.query)

			wantYear := tt.wantYear
			if wantYear == 0 {
				wantYear = now.Year()
			}
			wantMonth := tt.wantMonth
			if wantMonth == 0 {
				wantMonth = int(now.Month())
			}

			if result.Year != wantYear {
				t.Errorf("Year = %d, want %d", result.Year, wantYear)
			}
			if result.Month != wantMonth {
				t.Errorf("Month = %d, want %d", result.Month, wantMonth)
			}
		})
	}
}

func TestMonthParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  MonthParams
		wantErr bool
	}{
		{"valid", MonthParams{Year: 2024, Month: 6}, false},
		{"month zero", MonthParams{Year: 2024, Month: 0}, true},
		{"month thirteen", MonthParams{Year: 2024, Month: 13}, true},
		{"year too small", MonthParams{Year: 1850, Month: 6}, true},
		{"year too large", MonthParams{Year: 2300, Month: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		if err := DecodeJSON(req, &p); err != nil {
			t.Fatalf("DecodeJSON() error = %v", err)
		}
		if p.Name != "x" {
			t.Errorf("Name = %s", p.Name)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
		var p payload
		if err := DecodeJSON(req, &p); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("trailing garbage rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
		var p payload
		if err := DecodeJSON(req, &p); err == nil {
			t.Fatal("expected error for trailing data")
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
		var p payload
		if err := DecodeJSON(req, &p); err == nil {
			t.Fatal("expected error for malformed body")
		}
	})
}

func TestUserID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := UserID(req); got != "" {
		t.Errorf("UserID() = %q, want empty", got)
	}

	req.Header.Set(UserHeader, "  alice  ")
	if got := UserID(req); got != "alice" {
		t.Errorf("UserID() = %q, want alice", got)
	}
}
