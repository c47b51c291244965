package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/commonsgame/commons-go/internal/api/response"
	"github.com/commonsgame/commons-go/internal/services/session"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	sessionService *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Start handles POST /api/v1/games/{code}/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	started, err := h.sessionService.StartGameSessionWithCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.StartSessionResponse{
		SessionRef: string(started.SessionRef),
		RoundRef:   string(started.RoundRef),
	})
}

// ListMine handles GET /api/v1/sessions/mine
func (h *SessionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owned, err := h.sessionService.GetMyOwnedSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	sessions := make([]response.Session, len(owned))
	for i, s := range owned {
		sessions[i] = response.SessionFromModel(s)
	}

	response.JSON(w, http.StatusOK, response.SessionsResponse{Sessions: sessions})
}
