package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/commonsgame/commons-go/internal/api/handler"
	"github.com/commonsgame/commons-go/internal/api/middleware"
	"github.com/commonsgame/commons-go/internal/services/directory"
	"github.com/commonsgame/commons-go/internal/services/round"
	"github.com/commonsgame/commons-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	DirectoryService *directory.Service
	SessionService   *session.Service
	RoundService     *round.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.DirectoryService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)
	roundHandler := handler.NewRoundHandler(cfg.RoundService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game directory routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/join", gameHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/players", gameHandler.ListPlayers).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/games/{code}/sessions", sessionHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/sessions/mine", sessionHandler.ListMine).Methods(http.MethodGet)

	// Round routes
	api.HandleFunc("/rounds/{ref}", roundHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{ref}/moves", roundHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/rounds/{ref}/close", roundHandler.Close).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
