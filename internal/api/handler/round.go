package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/commonsgame/commons-go/internal/api/request"
	"github.com/commonsgame/commons-go/internal/api/response"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/services/round"
)

// RoundHandler handles round endpoints
type RoundHandler struct {
	roundService *round.Service
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(roundService *round.Service) *RoundHandler {
	return &RoundHandler{
		roundService: roundService,
	}
}

// Get handles GET /api/v1/rounds/{ref}
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref := model.Ref(mux.Vars(r)["ref"])

	status, err := h.roundService.GetRoundStatus(r.Context(), ref)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundStatusFromModel(status))
}

// Move handles POST /api/v1/rounds/{ref}/moves
func (h *RoundHandler) Move(w http.ResponseWriter, r *http.Request) {
	ref := model.Ref(mux.Vars(r)["ref"])

	var req request.MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	moveRef, err := h.roundService.MakeNewMove(r.Context(), ref, model.ResourceAmount(req.ResourceAmount))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MakeMoveResponse{MoveRef: string(moveRef)})
}

// Close handles POST /api/v1/rounds/{ref}/close
func (h *RoundHandler) Close(w http.ResponseWriter, r *http.Request) {
	ref := model.Ref(mux.Vars(r)["ref"])

	outcome, err := h.roundService.TryToCloseRound(r.Context(), ref)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CloseRoundFromModel(outcome))
}
