package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/mood"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
)

// Fallback searches for "<emotion> mood" playlists and returns up to ten valid tracks from the first playlist
// with both an id and a name.
func (e *MoodEngine) Fallback(ctx context.Context, emotion, token string) (*models.RecommendationResult, error) {
	label := normalizeLabel(emotion)
	profile := mood.Lookup(label)
	query := label + " mood"

	search, err := e.spotify.SearchPlaylists(ctx, token, query, searchLimit)
	if err != nil {
		e.logger.Warn("playlist search failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: no playlists found for this mood", shared.ErrNotFound)
	}
	if search.Playlists == nil || len(search.Playlists.Items) == 0 {
		return nil, fmt.Errorf("%w: no playlists found for this mood", shared.ErrNotFound)
	}

	playlist := firstValidPlaylist(search.Playlists.Items)
	if playlist == nil {
		return nil, fmt.Errorf("%w: no valid playlists found for this mood", shared.ErrNotFound)
	}

	page, err := e.spotify.PlaylistTracks(ctx, token, playlist.ID, playlistTrackLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get playlist tracks: %v", shared.ErrUpstream, err)
	}
	if page.Items == nil {
		return nil, fmt.Errorf("%w: playlist has no tracks", shared.ErrNotFound)
	}

	candidates := make([]*services.SpotifyTrack, 0, len(page.Items))
	for _, item := range services.Values(page.Items) {
		if track, ok := item.Track.Get(); ok {
			candidates = append(candidates, track)
		}
	}

	tracks := services.NormalizeTracks(candidates, maxTracks)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no playable tracks found in playlist", shared.ErrNotFound)
	}

	e.logger.Info("playlist fallback", "emotion", label, "playlist", playlist.Name, "tracks", len(tracks))
	return models.NewRecommendationResult(label, tracks, profile, playlist.Name, models.SourcePlaylistSearch), nil
}

func firstValidPlaylist(items []services.Maybe[services.SpotifySimplePlaylist]) *services.SpotifySimplePlaylist {
	for _, p := range services.Values(items) {
		if p.ID != "" && p.Name != "" {
			return p
		}
	}
	return nil
}
