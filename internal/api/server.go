// Package api exposes the application over a JSON HTTP API.
//
// Routing uses Go 1.22 method patterns on the standard mux. Handlers
// parse and validate the wire format, then delegate to the service layer;
// no business rules live here.
package api

import (
	"net/http"

	"github.com/splitsmart-dev/splitsmart/internal/auth"
	"github.com/splitsmart-dev/splitsmart/internal/middleware"
	"github.com/splitsmart-dev/splitsmart/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	auth     *service.AuthService
	groups   *service.GroupService
	expenses *service.ExpenseService
	jwt      *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(authService *service.AuthService, groupService *service.GroupService, expenseService *service.ExpenseService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		auth:     authService,
		groups:   groupService,
		expenses: expenseService,
		jwt:      jwtManager,
	}
}

// Routes builds the full route table. Everything under /api/v1 except
// auth and receipt extraction requires a valid bearer token.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Receipt extraction is stateless and touches no user data, so a
	// token is optional; when present the request log carries the user.
	optional := middleware.OptionalAuth(s.jwt)
	mux.Handle("POST /api/v1/receipts/extract", optional(http.HandlerFunc(s.handleExtractReceipt)))

	protected := middleware.RequireAuth(s.jwt)

	mux.Handle("POST /api/v1/groups", protected(http.HandlerFunc(s.handleCreateGroup)))
	mux.Handle("GET /api/v1/groups", protected(http.HandlerFunc(s.handleListGroups)))
	mux.Handle("GET /api/v1/groups/{groupID}", protected(http.HandlerFunc(s.handleGetGroup)))
	mux.Handle("DELETE /api/v1/groups/{groupID}", protected(http.HandlerFunc(s.handleDeleteGroup)))
	mux.Handle("POST /api/v1/groups/{groupID}/members", protected(http.HandlerFunc(s.handleAddMembers)))

	mux.Handle("POST /api/v1/groups/{groupID}/expenses", protected(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /api/v1/groups/{groupID}/expenses", protected(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("GET /api/v1/groups/{groupID}/expenses/{expenseID}", protected(http.HandlerFunc(s.handleGetExpense)))
	mux.Handle("POST /api/v1/groups/{groupID}/expenses/{expenseID}/settle", protected(http.HandlerFunc(s.handleSettleExpense)))
	mux.Handle("DELETE /api/v1/groups/{groupID}/expenses/{expenseID}", protected(http.HandlerFunc(s.handleDeleteExpense)))

	mux.Handle("GET /api/v1/groups/{groupID}/balances", protected(http.HandlerFunc(s.handleGroupBalances)))
	mux.Handle("GET /api/v1/groups/{groupID}/members/{memberID}/pending", protected(http.HandlerFunc(s.handlePendingAmount)))

	return middleware.Metrics(middleware.Logging(corsMiddleware(mux)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
