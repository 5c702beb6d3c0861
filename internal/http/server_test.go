package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onlyfunds/internal/remote/memory"
	"onlyfunds/internal/services"
	"onlyfunds/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	stores := store.NewRegistry()
	backend := memory.New()
	srv := NewServer(":0",
		stores,
		services.NewBudgetService(stores, backend),
		services.NewTransactionService(stores, backend),
		services.NewRefresher(stores, backend),
		nil)
	t.Cleanup(func() {
		srv.rateLimiter.Stop()
		srv.cacheManager.Stop()
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set(UserHeader, userID)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "", "")
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rr.Code)
		}
	}
}

func TestMissingUserHeader(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/progress", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user header, got %d", rr.Code)
	}
}

func TestListCategories(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/categories", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var cats []categoryView
	if err := json.Unmarshal(rr.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected a non-empty catalog")
	}
	if cats[0].Name != "food" {
		t.Errorf("first category = %s, want food", cats[0].Name)
	}
}

func TestSetBudgetValidationAndSuccess(t *testing.T) {
	srv := newTestServer(t)

	// Invalid amount and month
	rr := doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"food","amount":"-5","month":13,"year":2024}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	var fe fieldErrorPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &fe); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fe.Fields) < 2 {
		t.Errorf("expected field errors for amount and month, got %v", fe.Fields)
	}

	// Malformed JSON
	rr = doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice", `{"category":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rr.Code)
	}

	// Success
	rr = doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"food","amount":"350.00","month":6,"year":2024}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var b budgetView
	if err := json.Unmarshal(rr.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.ID == "" || b.AmountCents != 35000 || b.Amount != "350.00" {
		t.Errorf("unexpected budget view: %+v", b)
	}
}

func TestProgressFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"food","amount":"350.00","month":6,"year":2024}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("set budget: %d", rr.Code)
	}

	for _, body := range []string{
		`{"category":"food","amount":"125.50","type":"expense","date":"2024-06-10"}`,
		`{"category":"food","amount":"24.50","type":"expense","date":"2024-06-20"}`,
		`{"category":"food","amount":"999.99","type":"income","date":"2024-06-15"}`,
		`{"category":"transport","amount":"10.00","type":"expense","date":"2024-06-05"}`,
	} {
		rr = doJSON(t, srv, http.MethodPost, "/api/v1/transactions", "alice", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("add transaction: %d: %s", rr.Code, rr.Body.String())
		}
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/v1/progress?month=6&year=2024", "alice", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("progress: %d", rr.Code)
	}
	var progress []progressView
	if err := json.Unmarshal(rr.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(progress) != 1 {
		t.Fatalf("expected one progress record, got %d", len(progress))
	}
	p := progress[0]
	if p.Category != "food" {
		t.Errorf("category = %s", p.Category)
	}
	if p.SpentAmountCents != 15000 {
		t.Errorf("spent = %d, want 15000", p.SpentAmountCents)
	}
	if p.RemainingAmountCents != 20000 {
		t.Errorf("remaining = %d, want 20000", p.RemainingAmountCents)
	}
	if p.PercentageUsed != 43 {
		t.Errorf("percentage = %d, want 43", p.PercentageUsed)
	}
	if p.IsOverBudget {
		t.Error("should not be over budget")
	}

	// A new expense invalidates the cached report
	rr = doJSON(t, srv, http.MethodPost, "/api/v1/transactions", "alice",
		`{"category":"food","amount":"250.00","type":"expense","date":"2024-06-25"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add transaction: %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/v1/progress?month=6&year=2024", "alice", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if progress[0].SpentAmountCents != 40000 {
		t.Errorf("spent after new expense = %d, want 40000", progress[0].SpentAmountCents)
	}
	if !progress[0].IsOverBudget {
		t.Error("should be over budget after new expense")
	}
}

func TestProgressInvalidPeriod(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/progress?month=13&year=2024", "alice", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rr.Code)
	}
}

func TestRemoveBudget(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"transport","amount":"80.00","month":6,"year":2024}`)
	var b budgetView
	if err := json.Unmarshal(rr.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/v1/budgets/"+b.ID, "alice", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/v1/budgets", "alice", "")
	var budgets []budgetView
	if err := json.Unmarshal(rr.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("expected no budgets after delete, got %d", len(budgets))
	}
}

func TestUserIsolation(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"food","amount":"100.00","month":6,"year":2024}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("set budget: %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/v1/budgets", "bob", "")
	var budgets []budgetView
	if err := json.Unmarshal(rr.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("bob sees alice's budgets: %v", budgets)
	}
}

func TestRefresh(t *testing.T) {
	stores := store.NewRegistry()
	backend := memory.New()
	srv := NewServer(":0",
		stores,
		services.NewBudgetService(stores, backend),
		services.NewTransactionService(stores, backend),
		services.NewRefresher(stores, backend),
		nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/budgets", "alice",
		`{"category":"food","amount":"100.00","month":6,"year":2024}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("set budget: %d", rr.Code)
	}

	// Wipe the store; refresh repopulates from the backend.
	stores.Drop("alice")

	rr = doJSON(t, srv, http.MethodPost, "/api/v1/refresh", "alice", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("refresh: %d: %s", rr.Code, rr.Body.String())
	}

	if got := stores.For("alice").Budgets.Len(); got != 1 {
		t.Errorf("budgets after refresh = %d, want 1", got)
	}
}
