package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
)

const maxBodyBytes = 1 << 20

type recommendRequest struct {
	Emotion     string `json:"emotion"`
	AccessToken string `json:"access_token"`
}

type playRequest struct {
	AccessToken string   `json:"access_token"`
	TrackURIs   []string `json:"track_uris"`
	DeviceID    string   `json:"device_id"`
}

type pauseRequest struct {
	AccessToken string `json:"access_token"`
	DeviceID    string `json:"device_id"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// decodeBody reads a JSON request body into v. An empty body leaves v at its zero value.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &Error{Status: http.StatusBadRequest, Message: "Invalid request body"}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) clientID(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, map[string]string{"client_id": s.config.Credentials.Spotify.ClientID})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) error {
	var req recommendRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	result, err := s.engine.Recommend(r.Context(), req.Emotion, req.AccessToken)
	if err != nil {
		if e := AsError(err); e.Status >= http.StatusInternalServerError {
			s.logger.Error("recommendation failed", "emotion", req.Emotion, "error", err, "request_id", GetRequestID(r))
		}
		return err
	}
	return WriteJSON(w, http.StatusOK, result)
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) error {
	var req playRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	status, err := s.engine.Play(r.Context(), req.AccessToken, req.TrackURIs, req.DeviceID)
	if err != nil {
		return playbackFailure(err, "Failed to start playback")
	}
	return WriteJSON(w, http.StatusOK, status)
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) error {
	var req pauseRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	status, err := s.engine.Pause(r.Context(), req.AccessToken, req.DeviceID)
	if err != nil {
		return playbackFailure(err, "Failed to pause playback")
	}
	return WriteJSON(w, http.StatusOK, status)
}

func playbackFailure(err error, message string) error {
	e := AsError(err)
	if errors.Is(err, shared.ErrPlaybackFailed) {
		e.Message = message
	}
	return e
}

func (s *Server) devices(w http.ResponseWriter, r *http.Request) error {
	token := bearerToken(r)
	if token == "" {
		return fmt.Errorf("%w: no access token", shared.ErrUnauthorized)
	}
	return WriteJSON(w, http.StatusOK, map[string]any{"devices": s.engine.Devices(r.Context(), token)})
}

func (s *Server) exchangeToken(w http.ResponseWriter, r *http.Request) error {
	var req exchangeRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.Code == "" {
		return fmt.Errorf("%w: no authorization code provided", shared.ErrMissingArgument)
	}

	payload, err := s.exchanger.Exchange(r.Context(), req.Code)
	if err != nil {
		s.logger.Warn("token exchange failed", "error", err, "request_id", GetRequestID(r))
		return err
	}
	return WriteJSON(w, http.StatusOK, payload)
}

// savePreferences acknowledges the request; preferences are not stored.
func (s *Server) savePreferences(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
