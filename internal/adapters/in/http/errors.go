package http

import (
	"net/http"

	"proxybuy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body. Kind carries the machine-readable
// error taxonomy name so clients can distinguish a stale quote from a lost
// concurrency race without parsing messages.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var kindToStatus = map[string]int{
	"VALIDATION":             http.StatusBadRequest,
	"NOT_FOUND":              http.StatusNotFound,
	"INVALID_TRANSITION":     http.StatusConflict,
	"QUOTE_EXPIRED":          http.StatusConflict,
	"QUOTE_ALREADY_RESOLVED": http.StatusConflict,
	"PRECONDITION_FAILED":    http.StatusConflict,
	"CONFLICT":               http.StatusConflict,
	"UNAVAILABLE":            http.StatusServiceUnavailable,
}

// writeError maps a domain error to an HTTP response. Unknown errors become
// 500 with a generic message so internals do not leak to clients.
func writeError(ctx echo.Context, err error) error {
	kind := errs.Kind(err)

	status, ok := kindToStatus[kind]
	if !ok {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Kind:    kind,
			Message: "internal error",
		})
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: err.Error(),
	})
}

// writeBadRequest reports a malformed request body or path parameter.
func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    "VALIDATION",
		Message: message,
	})
}
