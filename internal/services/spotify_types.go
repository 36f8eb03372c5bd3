// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"encoding/json"
)

// Maybe decodes a JSON value leniently: null or a value of the wrong shape leaves it empty instead of
// failing the enclosing payload.
type Maybe[T any] struct {
	value *T
}

// Some wraps v.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: &v}
}

// UnmarshalJSON implements [json.Unmarshaler]. It never returns an error.
func (m *Maybe[T]) UnmarshalJSON(data []byte) error {
	m.value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	m.value = &v
	return nil
}

// MarshalJSON implements [json.Marshaler], writing null when empty.
func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if m.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// Get returns the decoded value, or nil and false.
func (m Maybe[T]) Get() (*T, bool) {
	return m.value, m.value != nil
}

// Values drops empty entries from items.
func Values[T any](items []Maybe[T]) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if v, ok := item.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Product     string    `json:"product"` // premium, free, etc.
	Followers   followers `json:"followers"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyTrack represents a Spotify track.
//
// Only ID, Name and URI must be well-formed; the other fields decode to empty on a type mismatch.
type SpotifyTrack struct {
	ID         string                        `json:"id"`
	Name       string                        `json:"name"`
	URI        string                        `json:"uri"`
	PreviewURL Maybe[string]                 `json:"preview_url"`
	Artists    Maybe[[]Maybe[SpotifyArtist]] `json:"artists"`
	Album      Maybe[SpotifyAlbum]           `json:"album"`
}

// PrimaryArtist returns the first artist entry when it decoded.
func (t *SpotifyTrack) PrimaryArtist() (*SpotifyArtist, bool) {
	artists, ok := t.Artists.Get()
	if !ok || len(*artists) == 0 {
		return nil, false
	}
	return (*artists)[0].Get()
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	URI    string   `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Images []Maybe[SpotifyImage] `json:"images"`
	URI    string                `json:"uri"`
}

type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       Owner  `json:"owner"`
	URI         string `json:"uri"`
}

// SpotifyPlaylistPage is a page of playlists. A nil Items means the key was absent.
type SpotifyPlaylistPage struct {
	Items []Maybe[SpotifySimplePlaylist] `json:"items"`
	Total int                            `json:"total"`
}

// SpotifyPlaylistSearch is the response of GET /search?type=playlist.
type SpotifyPlaylistSearch struct {
	Playlists *SpotifyPlaylistPage `json:"playlists"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string              `json:"added_at"`
	Track   Maybe[SpotifyTrack] `json:"track"`
}

// SpotifyPlaylistTracks is the response of GET /playlists/{id}/tracks.
type SpotifyPlaylistTracks struct {
	Items []Maybe[SpotifyPlaylistTrack] `json:"items"`
	Total int                           `json:"total"`
}

// SpotifyDevice represents a Spotify Connect device.
type SpotifyDevice struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	IsRestricted  bool   `json:"is_restricted"`
	VolumePercent *int   `json:"volume_percent"`
}

type pagedTracks struct {
	Items []Maybe[SpotifyTrack] `json:"items"`
}

type pagedArtists struct {
	Items []Maybe[SpotifyArtist] `json:"items"`
}

type recommendationsResponse struct {
	Tracks []Maybe[SpotifyTrack] `json:"tracks"`
}

type devicesResponse struct {
	Devices []Maybe[SpotifyDevice] `json:"devices"`
}

type playRequest struct {
	URIs       []string `json:"uris,omitempty"`
	PositionMS int      `json:"position_ms"`
}
