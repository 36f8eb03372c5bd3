package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
)

// Play starts uris from position 0.
//
// The device list is checked first: an empty list fails with [shared.ErrNoActiveDevice]. If the list could not
// be fetched the command is still attempted with the caller's deviceID.
func (e *MoodEngine) Play(ctx context.Context, token string, uris []string, deviceID string) (*models.PlaybackStatus, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no access token provided", shared.ErrUnauthorized)
	}

	devices, err := e.spotify.Devices(ctx, token)
	switch {
	case err != nil:
		e.logger.Warn("could not list devices, attempting playback anyway", "error", err)
	case len(devices) == 0:
		return nil, shared.ErrNoActiveDevice
	case deviceID == "":
		deviceID = devices[0].ID
	}

	if err := e.spotify.Play(ctx, token, deviceID, uris, 0); err != nil {
		return nil, playbackError(err)
	}

	e.logger.Info("playback started", "device", deviceID, "tracks", len(uris))
	return &models.PlaybackStatus{Status: models.StatusPlaying, DeviceID: deviceID}, nil
}

// Pause pauses playback on deviceID.
func (e *MoodEngine) Pause(ctx context.Context, token, deviceID string) (*models.PlaybackStatus, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no access token provided", shared.ErrUnauthorized)
	}

	if err := e.spotify.Pause(ctx, token, deviceID); err != nil {
		return nil, playbackError(err)
	}

	return &models.PlaybackStatus{Status: models.StatusPaused, DeviceID: deviceID}, nil
}

// Devices lists the user's devices, degrading to an empty list on any failure.
func (e *MoodEngine) Devices(ctx context.Context, token string) []models.Device {
	devices, err := e.spotify.Devices(ctx, token)
	if err != nil {
		e.logger.Warn("failed to list devices", "error", err)
		return []models.Device{}
	}

	out := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, models.Device{
			ID:            d.ID,
			Name:          d.Name,
			Type:          d.Type,
			IsActive:      d.IsActive,
			VolumePercent: d.VolumePercent,
		})
	}
	return out
}

// playbackError maps a failed player command: 403 means Premium is required, anything else is
// [shared.ErrPlaybackFailed] still wrapping the provider StatusError so callers can read the status.
func playbackError(err error) error {
	if errors.Is(err, shared.ErrProviderForbidden) {
		return fmt.Errorf("%w: %w", shared.ErrPremiumRequired, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrPlaybackFailed, err)
}
