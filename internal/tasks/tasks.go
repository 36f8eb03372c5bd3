// package tasks turns an emotion and a Spotify token into playable tracks, and drives playback.
package tasks

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/mood"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
)

const (
	maxTracks          = 10
	recommendLimit     = 20
	topTracksLimit     = 5
	topArtistsLimit    = 3
	searchLimit        = 10
	playlistTrackLimit = 20
	timeRange          = "short_term"
	defaultMarket      = "US"
)

// Engine defines the mood operations exposed over HTTP and the CLI.
type Engine interface {
	// Recommend builds a personalized track list for emotion, falling back to playlist search when
	// Spotify's recommendations come back empty or fail.
	Recommend(ctx context.Context, emotion, token string) (*models.RecommendationResult, error)

	// Fallback picks tracks from the first usable playlist matching the emotion.
	Fallback(ctx context.Context, emotion, token string) (*models.RecommendationResult, error)

	// Play starts uris on deviceID, or on the user's first device when deviceID is empty.
	Play(ctx context.Context, token string, uris []string, deviceID string) (*models.PlaybackStatus, error)

	// Pause pauses playback on deviceID, or on the active device when empty.
	Pause(ctx context.Context, token, deviceID string) (*models.PlaybackStatus, error)

	// Devices lists the user's devices. Failures yield an empty list.
	Devices(ctx context.Context, token string) []models.Device
}

var _ Engine = (*MoodEngine)(nil)

// MoodEngine implements [Engine] on top of a [services.Provider].
type MoodEngine struct {
	spotify services.Provider
	market  string
	logger  *log.Logger
}

// NewMoodEngine creates a MoodEngine. An empty market defaults to "US"; a nil logger to [shared.NewLogger].
func NewMoodEngine(spotify services.Provider, market string, logger *log.Logger) *MoodEngine {
	if market == "" {
		market = defaultMarket
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &MoodEngine{
		spotify: spotify,
		market:  market,
		logger:  shared.WithLogger(logger, "component", "engine"),
	}
}

// normalizeLabel lower-cases the requested emotion, defaulting to neutral.
func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return string(mood.Neutral)
	}
	return label
}

// personalizedName is the display name of direct recommendation results.
func personalizedName(label string) string {
	return shared.Capitalize(label) + " Mood - Personalized"
}
