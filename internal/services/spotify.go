// Spotify Web API implementation of [Provider]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// DefaultTimeout bounds every outbound Spotify call.
	DefaultTimeout = 10 * time.Second
)

var _ Provider = (*SpotifyClient)(nil)

// StatusError is returned for any non-success Spotify response. It carries the status code and the raw body.
//
// errors.Is matches [shared.ErrProviderUnauthorized] for 401, [shared.ErrProviderForbidden] for 403 and
// [shared.ErrAPIRequest] for every status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify API error: %s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case shared.ErrProviderUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case shared.ErrProviderForbidden:
		return e.StatusCode == http.StatusForbidden
	case shared.ErrAPIRequest:
		return true
	}
	return false
}

// SpotifyClient is a stateless Spotify Web API client; the user's bearer token is passed on every call.
// No call is retried.
type SpotifyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyClient creates a client for baseURL (the public API when empty).
//
// A nil client gets one with [DefaultTimeout].
func NewSpotifyClient(baseURL string, client *http.Client) *SpotifyClient {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &SpotifyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// doRequest performs an authenticated HTTP request to the Spotify API and decodes a JSON response into result.
//
// Returns the response status code alongside any error.
func (c *SpotifyClient) doRequest(ctx context.Context, method, endpoint, token string, query url.Values, body, result any) (int, error) {
	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to encode request body: %v", shared.ErrAPIRequest, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}

	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: data}
	}

	if result != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: failed to decode %s response: %v", shared.ErrAPIRequest, endpoint, err)
		}
	}

	return resp.StatusCode, nil
}

// CurrentUser retrieves the profile of the token's owner.
func (c *SpotifyClient) CurrentUser(ctx context.Context, token string) (*SpotifyUser, error) {
	var user SpotifyUser
	if _, err := c.doRequest(ctx, http.MethodGet, "/me", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func topQuery(limit int, timeRange string) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if timeRange != "" {
		q.Set("time_range", timeRange)
	}
	return q
}

// TopTracks retrieves the user's top tracks.
func (c *SpotifyClient) TopTracks(ctx context.Context, token string, limit int, timeRange string) ([]Maybe[SpotifyTrack], error) {
	var response pagedTracks
	if _, err := c.doRequest(ctx, http.MethodGet, "/me/top/tracks", token, topQuery(limit, timeRange), nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// TopArtists retrieves the user's top artists.
func (c *SpotifyClient) TopArtists(ctx context.Context, token string, limit int, timeRange string) ([]Maybe[SpotifyArtist], error) {
	var response pagedArtists
	if _, err := c.doRequest(ctx, http.MethodGet, "/me/top/artists", token, topQuery(limit, timeRange), nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// Recommendations retrieves tracks generated from seeds and tunable attributes.
func (c *SpotifyClient) Recommendations(ctx context.Context, token string, params RecommendationParams) ([]Maybe[SpotifyTrack], error) {
	var response recommendationsResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/recommendations", token, params.Values(), nil, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// SearchPlaylists searches the catalog for playlists matching query.
func (c *SpotifyClient) SearchPlaylists(ctx context.Context, token, query string, limit int) (*SpotifyPlaylistSearch, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "playlist")
	q.Set("limit", strconv.Itoa(limit))

	var response SpotifyPlaylistSearch
	if _, err := c.doRequest(ctx, http.MethodGet, "/search", token, q, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// PlaylistTracks retrieves up to limit items of a playlist.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, token, playlistID string, limit int) (*SpotifyPlaylistTracks, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var response SpotifyPlaylistTracks
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, token, q, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Devices retrieves the user's available playback devices.
func (c *SpotifyClient) Devices(ctx context.Context, token string) ([]SpotifyDevice, error) {
	var response devicesResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/me/player/devices", token, nil, nil, &response); err != nil {
		return nil, err
	}

	devices := make([]SpotifyDevice, 0, len(response.Devices))
	for _, d := range Values(response.Devices) {
		devices = append(devices, *d)
	}
	return devices, nil
}

func deviceQuery(deviceID string) url.Values {
	if deviceID == "" {
		return nil
	}
	q := url.Values{}
	q.Set("device_id", deviceID)
	return q
}

// Play starts or resumes playback of uris on deviceID.
func (c *SpotifyClient) Play(ctx context.Context, token, deviceID string, uris []string, positionMS int) error {
	body := playRequest{URIs: uris, PositionMS: positionMS}
	status, err := c.doRequest(ctx, http.MethodPut, "/me/player/play", token, deviceQuery(deviceID), body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusAccepted {
		return &StatusError{Endpoint: "/me/player/play", StatusCode: status}
	}
	return nil
}

// Pause pauses playback on deviceID.
func (c *SpotifyClient) Pause(ctx context.Context, token, deviceID string) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/me/player/pause", token, deviceQuery(deviceID), nil, nil)
	return err
}
