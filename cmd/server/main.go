package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitsmart-dev/splitsmart/internal/api"
	"github.com/splitsmart-dev/splitsmart/internal/auth"
	"github.com/splitsmart-dev/splitsmart/internal/blob"
	"github.com/splitsmart-dev/splitsmart/internal/config"
	"github.com/splitsmart-dev/splitsmart/internal/service"
	"github.com/splitsmart-dev/splitsmart/internal/storage/sqlite"
	"github.com/splitsmart-dev/splitsmart/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	groupService := service.NewGroupService(store)
	expenseService := service.NewExpenseService(store, blob.NewHTTPStore(nil))

	server := api.NewServer(authService, groupService, expenseService, jwtManager)

	// h2c allows HTTP/2 without TLS for clients that want multiplexing
	// behind a terminating proxy.
	handler := h2c.NewHandler(server.Routes(), &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
