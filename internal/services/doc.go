// Package services wraps the HTTP APIs moodmix talks to.
//
// # Spotify Provider
//
// [SpotifyClient] implements [Provider]. It is stateless with respect to users: the caller's bearer token
// travels with every call and nothing is cached. Each operation is one request with a fixed timeout and
// no retries.
//
// # Error Handling
//
// Non-2xx responses come back as [*StatusError], which carries the status code and raw body:
//   - errors.Is(err, [shared.ErrProviderUnauthorized]) : 401, token missing/expired/revoked
//   - errors.Is(err, [shared.ErrProviderForbidden]) : 403, e.g. playback without Premium
//   - errors.Is(err, [shared.ErrAPIRequest]) : any failed call, including transport and decode failures
//
// # Lenient Decoding
//
// Spotify payloads regularly contain null list entries (removed tracks, unavailable playlists). List entries
// and nested objects decode through [Maybe], which swallows null or wrongly shaped values so one bad entry
// never fails the whole response. [NormalizeTrack] is the single place a Spotify track becomes a [models.Track].
//
// # Token Exchange
//
// [TokenExchanger] relays the authorization-code grant to the accounts service with the app's credentials.
//
// # Local API
//
// [APIService] issues raw requests against a running moodmix server (used by `moodmix status`).
package services
