package services

import "github.com/desertthunder/moodmix/internal/models"

// UnknownArtist is used when a track carries no usable artist.
const UnknownArtist = "Unknown"

// NormalizeTrack converts a Spotify track into a [models.Track].
//
// The track is rejected (false) only when it is nil or lacks an id, name or uri. A missing or malformed
// artist list, album artwork or preview degrades that single field.
func NormalizeTrack(t *SpotifyTrack) (models.Track, bool) {
	if t == nil || t.ID == "" || t.Name == "" || t.URI == "" {
		return models.Track{}, false
	}

	track := models.Track{
		ID:     t.ID,
		Name:   t.Name,
		Artist: UnknownArtist,
		URI:    t.URI,
	}

	if artist, ok := t.PrimaryArtist(); ok && artist.Name != "" {
		track.Artist = artist.Name
	}

	if preview, ok := t.PreviewURL.Get(); ok && *preview != "" {
		url := *preview
		track.PreviewURL = &url
	}

	if album, ok := t.Album.Get(); ok && len(album.Images) > 0 {
		if img, ok := album.Images[0].Get(); ok && img.URL != "" {
			image := img.URL
			track.Image = &image
		}
	}

	return track, true
}

// NormalizeTracks normalizes items in order, skipping rejected entries, and stops after max tracks.
func NormalizeTracks(items []*SpotifyTrack, max int) []models.Track {
	tracks := make([]models.Track, 0, min(len(items), max))
	for _, item := range items {
		if len(tracks) >= max {
			break
		}
		if track, ok := NormalizeTrack(item); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks
}
