// Package tasks implements the mood engine: recommendation, playlist fallback and playback.
//
// # Recommend
//
// [MoodEngine.Recommend] runs in two stages:
//
//  1. Token check: GET /me. A Spotify rejection fails with [shared.ErrUnauthorized].
//  2. Direct attempt: seeds from the user's short-term top tracks and artists (at most two of each, see
//     [SeedSet]), the emotion's audio feature bounds from [mood.Lookup], then GET /recommendations.
//     Up to ten valid tracks are returned as a personalized result.
//
// The direct attempt reports an explicit outcome (success, empty or failed). Any non-success outcome,
// including a recovered panic, hands the request to [MoodEngine.Fallback]; results are never mixed.
//
// # Fallback
//
// [MoodEngine.Fallback] searches playlists for "<emotion> mood", takes the first one with an id and a name,
// and normalizes up to ten of its tracks. Each dead end is a distinct [shared.ErrNotFound]; a failed
// playlist read is [shared.ErrUpstream].
//
// # Playback
//
// [MoodEngine.Play] checks the device list (empty means [shared.ErrNoActiveDevice]), defaults to the first
// device, and starts playback at position 0. 403 maps to [shared.ErrPremiumRequired]; other rejections to
// [shared.ErrPlaybackFailed] with the provider status still reachable through errors.As.
package tasks
