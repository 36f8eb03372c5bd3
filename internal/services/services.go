// package services defines interface Provider for the Spotify Web API calls the mood engine makes
package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Provider is the slice of the Spotify Web API used by moodmix. Every call is made on behalf of the user owning token.
//
// Non-2xx responses are reported as [*StatusError].
type Provider interface {
	// CurrentUser fetches the token owner's profile. Used to validate a token.
	CurrentUser(ctx context.Context, token string) (*SpotifyUser, error)

	// TopTracks returns the user's most played tracks over timeRange (short_term, medium_term, long_term).
	TopTracks(ctx context.Context, token string, limit int, timeRange string) ([]Maybe[SpotifyTrack], error)

	// TopArtists returns the user's most played artists over timeRange.
	TopArtists(ctx context.Context, token string, limit int, timeRange string) ([]Maybe[SpotifyArtist], error)

	// Recommendations asks Spotify for tracks matching the seeds and tunable attributes in params.
	Recommendations(ctx context.Context, token string, params RecommendationParams) ([]Maybe[SpotifyTrack], error)

	// SearchPlaylists runs a catalog search restricted to playlists.
	SearchPlaylists(ctx context.Context, token, query string, limit int) (*SpotifyPlaylistSearch, error)

	// PlaylistTracks fetches the first limit items of a playlist.
	PlaylistTracks(ctx context.Context, token, playlistID string, limit int) (*SpotifyPlaylistTracks, error)

	// Devices lists the user's Spotify Connect devices.
	Devices(ctx context.Context, token string) ([]SpotifyDevice, error)

	// Play starts playback of uris on deviceID at positionMS.
	// Only 202 and 204 count as success.
	Play(ctx context.Context, token, deviceID string, uris []string, positionMS int) error

	// Pause pauses playback on deviceID, or the active device when empty.
	Pause(ctx context.Context, token, deviceID string) error
}

// RecommendationParams are the query parameters for GET /recommendations.
type RecommendationParams struct {
	Limit       int
	Market      string
	SeedTracks  []string
	SeedArtists []string
	SeedGenres  []string
	Tunables    map[string]float64 // e.g. min_valence, target_danceability
}

// Values encodes params as a query string. Empty seed lists are omitted.
func (p RecommendationParams) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Market != "" {
		v.Set("market", p.Market)
	}
	for key, seeds := range map[string][]string{
		"seed_tracks":  p.SeedTracks,
		"seed_artists": p.SeedArtists,
		"seed_genres":  p.SeedGenres,
	} {
		if len(seeds) > 0 {
			v.Set(key, strings.Join(seeds, ","))
		}
	}
	for key, value := range p.Tunables {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return v
}
