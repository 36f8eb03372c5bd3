package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
)

// apiHandler adapts handlers that return errors into http.Handler.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP implements http.Handler.
func (h apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		WriteError(w, r, err)
	}
}

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error is a failure ready to be written: a status code, a short message and an optional user action.
type Error struct {
	Status  int
	Message string
	Action  string
}

func (e *Error) Error() string {
	return e.Message
}

// Body returns the response body for e.
func (e *Error) Body() ErrorBody {
	return ErrorBody{Error: e.Message, Message: e.Action}
}

// WriteJSON sends a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteError classifies err with [AsError] and writes it.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := AsError(err)
	_ = WriteJSON(w, e.Status, e.Body())
}

// AsError maps the engine's error taxonomy onto HTTP responses.
//
// A playback failure forwards the provider's status when it is a client or server error, 500 otherwise.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		return &Error{Status: http.StatusUnauthorized, Message: detail(err, shared.ErrUnauthorized)}
	case errors.Is(err, shared.ErrNoActiveDevice):
		return &Error{
			Status:  http.StatusNotFound,
			Message: "No active Spotify devices found",
			Action:  "Please open Spotify on your phone, computer, or web player",
		}
	case errors.Is(err, shared.ErrPremiumRequired):
		return &Error{
			Status:  http.StatusForbidden,
			Message: "Spotify Premium required",
			Action:  "You need Spotify Premium to control playback",
		}
	case errors.Is(err, shared.ErrNotFound):
		return &Error{Status: http.StatusNotFound, Message: detail(err, shared.ErrNotFound)}
	case errors.Is(err, shared.ErrPlaybackFailed):
		status := http.StatusInternalServerError
		var se *services.StatusError
		if errors.As(err, &se) && se.StatusCode >= 400 {
			status = se.StatusCode
		}
		return &Error{Status: status, Message: "Failed to control playback"}
	case errors.Is(err, shared.ErrUpstream):
		return &Error{Status: http.StatusInternalServerError, Message: detail(err, shared.ErrUpstream)}
	case errors.Is(err, shared.ErrAuthFailed):
		return &Error{Status: http.StatusBadRequest, Message: "Failed to exchange code for token"}
	case errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidInput):
		return &Error{Status: http.StatusBadRequest, Message: detail(err, nil)}
	default:
		return &Error{Status: http.StatusInternalServerError, Message: "Internal server error"}
	}
}

// detail extracts the first message segment after the sentinel prefix, so wrapped causes never reach clients.
//
//	"not found: no playlists found for this mood: <cause>" -> "No playlists found for this mood"
func detail(err error, sentinel error) string {
	msg := err.Error()
	if sentinel != nil {
		msg = strings.TrimPrefix(msg, sentinel.Error())
	} else if _, after, ok := strings.Cut(msg, ": "); ok {
		msg = after
	}
	msg = strings.TrimPrefix(msg, ": ")
	msg, _, _ = strings.Cut(msg, ": ")

	if msg == "" {
		if sentinel != nil {
			msg = sentinel.Error()
		} else {
			msg = "Invalid request"
		}
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
