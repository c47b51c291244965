package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/commonsgame/commons-go/internal/api/request"
	"github.com/commonsgame/commons-go/internal/api/response"
	"github.com/commonsgame/commons-go/internal/services/directory"
)

// GameHandler handles game-code directory endpoints
type GameHandler struct {
	directoryService *directory.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(directoryService *directory.Service) *GameHandler {
	return &GameHandler{
		directoryService: directoryService,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	ref, err := h.directoryService.CreateGameCodeAnchor(r.Context(), req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{AnchorRef: string(ref)})
}

// Join handles POST /api/v1/games/{code}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	ref, err := h.directoryService.JoinGameWithCode(r.Context(), code, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinGameResponse{RegistrationRef: string(ref)})
}

// ListPlayers handles GET /api/v1/games/{code}/players
func (h *GameHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	regs, err := h.directoryService.GetPlayersForGameCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	players := make([]response.Player, len(regs))
	for i, reg := range regs {
		players[i] = response.PlayerFromModel(reg)
	}

	response.JSON(w, http.StatusOK, response.PlayersResponse{Players: players})
}
