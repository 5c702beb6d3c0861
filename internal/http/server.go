package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"onlyfunds/internal/cache"
	"onlyfunds/internal/core"
	"onlyfunds/internal/log"
	"onlyfunds/internal/middleware/ratelimit"
	"onlyfunds/internal/middleware/security"
	"onlyfunds/internal/middleware/trace"
	"onlyfunds/internal/services"
	"onlyfunds/internal/storage"
	"onlyfunds/internal/store"
)

// Server hosts the JSON API. It owns the per-user stores, the services
// that mutate them, and a cache of computed progress reports.
type Server struct {
	http.Server

	stores       *store.Registry
	budgets      *services.BudgetService
	transactions *services.TransactionService
	refresher    *services.Refresher

	// repo is optional; recurring endpoints are only mounted when the
	// sqlite backend provides one.
	repo *storage.Repository

	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware

	progressCache *cache.LRUCache[[]core.BudgetProgress]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, stores *store.Registry, budgets *services.BudgetService, transactions *services.TransactionService, refresher *services.Refresher, repo *storage.Repository) *Server {
	mux := http.NewServeMux()

	s := &Server{
		stores:        stores,
		budgets:       budgets,
		transactions:  transactions,
		refresher:     refresher,
		repo:          repo,
		rateLimiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:        trace.NewMiddleware(ExtractClientIP),
		progressCache: cache.NewLRUCache[[]core.BudgetProgress](200, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.progressCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/v1/progress", s.withUser(s.handleProgress))

	mux.HandleFunc("GET /api/v1/budgets", s.withUser(s.handleListBudgets))
	mux.HandleFunc("POST /api/v1/budgets", s.withUser(s.handleSetBudget))
	mux.HandleFunc("DELETE /api/v1/budgets/{id}", s.withUser(s.handleRemoveBudget))

	mux.HandleFunc("GET /api/v1/transactions", s.withUser(s.handleListTransactions))
	mux.HandleFunc("POST /api/v1/transactions", s.withUser(s.handleAddTransaction))
	mux.HandleFunc("DELETE /api/v1/transactions/{id}", s.withUser(s.handleRemoveTransaction))

	mux.HandleFunc("POST /api/v1/refresh", s.withUser(s.handleRefresh))

	if repo != nil {
		mux.HandleFunc("GET /api/v1/recurring", s.withUser(s.handleListRecurring))
		mux.HandleFunc("POST /api/v1/recurring", s.withUser(s.handleCreateRecurring))
		mux.HandleFunc("DELETE /api/v1/recurring/{id}", s.withUser(s.handleDeactivateRecurring))
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(ExtractClientIP, nil)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(headers.Middleware(limited(mux))),
	}

	return s
}

// withUser requires the user header on a handler.
func (s *Server) withUser(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r)
		if userID == "" {
			UnauthorizedError(fmt.Sprintf("missing %s header", UserHeader)).Write(w)
			return
		}
		next(w, r, userID)
	}
}

// ExtractClientIP resolves the client address, considering proxies.
func ExtractClientIP(r *http.Request) string {
	clientIP := r.Header.Get("X-Forwarded-For")
	if clientIP == "" {
		clientIP = r.Header.Get("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = r.RemoteAddr
	}
	return clientIP
}

// progressCacheKey builds the cache key for one user and period.
func progressCacheKey(userID string, year, month int) string {
	return fmt.Sprintf("%s:%d:%d", userID, year, month)
}

// invalidateUser drops every cached period for a user after a mutation.
func (s *Server) invalidateUser(ctx context.Context, userID string) {
	if n := s.progressCache.DeletePrefix(userID + ":"); n > 0 {
		slog.DebugContext(ctx, "Invalidated progress cache",
			log.FieldUserID, userID,
			log.FieldComponent, log.ComponentCache,
			"entries", n)
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()

		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
