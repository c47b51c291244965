package handler

import (
	"net/http"

	"github.com/commonsgame/commons-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest        = apierr.CodeInvalidRequest
	CodeInvalidGameCode       = apierr.CodeInvalidGameCode
	CodeInvalidNickname       = apierr.CodeInvalidNickname
	CodeInvalidResourceAmount = apierr.CodeInvalidResourceAmount
	CodeGameCodeNotFound      = apierr.CodeGameCodeNotFound
	CodeSessionNotFound       = apierr.CodeSessionNotFound
	CodeRoundNotFound         = apierr.CodeRoundNotFound
	CodeRoundClosed           = apierr.CodeRoundClosed
	CodeNotInRoster           = apierr.CodeNotInRoster
	CodeAlreadyMoved          = apierr.CodeAlreadyMoved
	CodeNoPlayers             = apierr.CodeNoPlayers
	CodeInternalError         = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
