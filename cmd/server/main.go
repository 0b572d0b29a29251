package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jhensel/fahrgeld/internal/api"
	"github.com/jhensel/fahrgeld/internal/auth"
	"github.com/jhensel/fahrgeld/internal/service"
	"github.com/jhensel/fahrgeld/internal/storage/sqlite"
	"github.com/jhensel/fahrgeld/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/fahrgeld.db")
	port := getEnv("PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		slog.Error("Invalid TOKEN_TTL", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.NewServer(
		service.NewLedgerService(store),
		service.NewSettlementService(store),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	// h2c allows HTTP/2 without TLS when running behind a terminating proxy.
	handler := h2c.NewHandler(server.Router(), &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
