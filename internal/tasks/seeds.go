package tasks

import (
	"context"
	"slices"

	"github.com/desertthunder/moodmix/internal/services"
)

const maxSeeds = 2

// SeedSet holds the track and artist seeds taken from a user's listening history.
// Each list is unique and holds at most two ids.
type SeedSet struct {
	Tracks  []string
	Artists []string
}

// Empty reports whether no history seeds were found, in which case genre seeds are used instead.
func (s SeedSet) Empty() bool {
	return len(s.Tracks) == 0 && len(s.Artists) == 0
}

func (s *SeedSet) addTrack(id string) {
	if id == "" || len(s.Tracks) >= maxSeeds || slices.Contains(s.Tracks, id) {
		return
	}
	s.Tracks = append(s.Tracks, id)
}

func (s *SeedSet) addArtist(id string) {
	if id == "" || len(s.Artists) >= maxSeeds || slices.Contains(s.Artists, id) {
		return
	}
	s.Artists = append(s.Artists, id)
}

// addTopTracks takes the first two tracks with an id, plus each one's primary artist.
func (s *SeedSet) addTopTracks(items []services.Maybe[services.SpotifyTrack]) {
	for _, track := range services.Values(items) {
		if len(s.Tracks) >= maxSeeds {
			return
		}
		if track.ID == "" {
			continue
		}
		s.addTrack(track.ID)

		if artist, ok := track.PrimaryArtist(); ok {
			s.addArtist(artist.ID)
		}
	}
}

func (s *SeedSet) addTopArtists(items []services.Maybe[services.SpotifyArtist]) {
	for _, artist := range services.Values(items) {
		if len(s.Artists) >= maxSeeds {
			return
		}
		s.addArtist(artist.ID)
	}
}

// collectSeeds reads the user's short-term top tracks, and top artists when fewer than two artists were found.
// Failed reads are logged and contribute nothing.
func (e *MoodEngine) collectSeeds(ctx context.Context, token string) SeedSet {
	var seeds SeedSet

	tracks, err := e.spotify.TopTracks(ctx, token, topTracksLimit, timeRange)
	if err != nil {
		e.logger.Warn("failed to read top tracks", "error", err)
	} else {
		seeds.addTopTracks(tracks)
	}

	if len(seeds.Artists) < maxSeeds {
		artists, err := e.spotify.TopArtists(ctx, token, topArtistsLimit, timeRange)
		if err != nil {
			e.logger.Warn("failed to read top artists", "error", err)
		} else {
			seeds.addTopArtists(artists)
		}
	}

	e.logger.Debug("collected seeds", "tracks", seeds.Tracks, "artists", seeds.Artists)
	return seeds
}
