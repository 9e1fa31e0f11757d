package handler

// RESPONSE HELPERS:
// Every response leaves through render, which sets Content-Type and the
// status recorded with render.Status before encoding the body.
//
// CONSISTENT ERROR FORMAT:
// Every error response has a single "error" field:
//
//	{"error": "User not found"}
//	{"error": [{"field": "content", "error": "must be at least 10 characters"}]}
//
// The second form only appears for field-level validation failures.

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/middleware"
)

// ErrResponse is a render.Renderer for error bodies.
type ErrResponse struct {
	HTTPStatusCode int `json:"-"`
	Error          any `json:"error"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errMessage(status int, message string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: status, Error: message}
}

var (
	errNotFound         = errMessage(http.StatusNotFound, "Not Found")
	errMethodNotAllowed = errMessage(http.StatusMethodNotAllowed, "Method Not Allowed")
	errInvalidJSON      = errMessage(http.StatusBadRequest, "Invalid JSON body")
	errInternal         = errMessage(http.StatusInternalServerError, "Internal Server Error")
)

// writeJSON sends v with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeErr renders an error body. Rendering only fails if the body cannot
// be encoded, and then there is nothing left to tell the client.
func writeErr(w http.ResponseWriter, r *http.Request, e *ErrResponse) {
	_ = render.Render(w, r, e)
}

// writeError maps a domain error to its HTTP form.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation → 400
//	apperror.ErrNotFound   → 404
//	apperror.ErrConflict   → 409
//	anything else          → 500, logged here and nowhere else
//
// The 500 body never carries err itself; driver messages can leak SQL.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		if status != http.StatusInternalServerError {
			resp := errMessage(status, appErr.Message)
			if len(appErr.Fields) > 0 {
				resp.Error = appErr.Fields
			}
			writeErr(w, r, resp)
			return
		}
	}

	logger.Error("request failed",
		slog.Any("error", err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
	)
	writeErr(w, r, errInternal)
}

// NotFound answers paths that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, r, errNotFound)
}

// MethodNotAllowed answers a known path requested with the wrong method.
//
// For the four methods the API speaks, the message names the method so the
// client sees which request shape was wrong. Anything else gets the generic
// message.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		writeErr(w, r, errMessage(http.StatusMethodNotAllowed, "Invalid URL for "+r.Method+" request"))
	default:
		writeErr(w, r, errMethodNotAllowed)
	}
}
