// package models defines the response shapes shared by the mood engine, HTTP server and CLI
package models

import "github.com/desertthunder/moodmix/internal/mood"

// Source tags where a [RecommendationResult] came from.
type Source string

const (
	SourceRecommendations Source = "recommendations"
	SourcePlaylistSearch  Source = "playlist_search"
)

// Track is the normalized track shape returned to callers.
//
// Only ID, Name and URI are guaranteed; PreviewURL and Image are nil when Spotify omits them.
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	URI        string  `json:"uri"`
	PreviewURL *string `json:"preview_url"`
	Image      *string `json:"image"`
}

// RecommendationResult is a playable set of tracks for an emotion.
type RecommendationResult struct {
	Emotion      string       `json:"emotion"`
	Tracks       []Track      `json:"tracks"`
	TrackURIs    []string     `json:"track_uris"`
	FeaturesUsed mood.Profile `json:"features_used"`
	PlaylistName string       `json:"playlist_name"`
	Source       Source       `json:"source"`
}

// NewRecommendationResult pairs tracks with their URIs in the same order.
func NewRecommendationResult(emotion string, tracks []Track, profile mood.Profile, name string, source Source) *RecommendationResult {
	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI
	}
	return &RecommendationResult{
		Emotion:      emotion,
		Tracks:       tracks,
		TrackURIs:    uris,
		FeaturesUsed: profile,
		PlaylistName: name,
		Source:       source,
	}
}

// Device is a Spotify Connect playback target.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"`
}

const (
	StatusPlaying = "playing"
	StatusPaused  = "paused"
)

// PlaybackStatus is the outcome of a play or pause command.
type PlaybackStatus struct {
	Status   string `json:"status"`
	DeviceID string `json:"device_id,omitempty"`
}
