package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commonsgame/commons-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidGameCode       = "INVALID_GAME_CODE"
	CodeInvalidNickname       = "INVALID_NICKNAME"
	CodeInvalidResourceAmount = "INVALID_RESOURCE_AMOUNT"
	CodeGameCodeNotFound      = "GAME_CODE_NOT_FOUND"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeRoundNotFound         = "ROUND_NOT_FOUND"
	CodeRoundClosed           = "ROUND_ALREADY_CLOSED"
	CodeNotInRoster           = "NOT_IN_ROSTER"
	CodeAlreadyMoved          = "ALREADY_MOVED"
	CodeNoPlayers             = "NO_PLAYERS"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameCodeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameCodeNotFound, "No game exists for this code"}}
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrInvalidGameCode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameCode, "Game code must not be empty"}}
	case errors.Is(err, model.ErrInvalidNickname):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidNickname, "Nickname must not be empty"}}
	case errors.Is(err, model.ErrInvalidResourceAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidResourceAmount, "Resource amount is negative or exceeds the round's pool"}}
	case errors.Is(err, model.ErrRoundClosed):
		return &httpError{http.StatusConflict, APIError{CodeRoundClosed, "Round already has a successor"}}
	case errors.Is(err, model.ErrNotInRoster):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoster, "Not a player in this session"}}
	case errors.Is(err, model.ErrAlreadyMoved):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyMoved, "Already moved this round"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "No players have joined this game code"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
