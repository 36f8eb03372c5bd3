// Package server exposes the mood engine over HTTP.
//
// # Routes
//
// All routes live under /api and are registered on a chi router in [NewServer]:
//
//	GET  /api/health                   liveness
//	GET  /api/spotify/client-id        application client id for the browser flow
//	POST /api/emotion/recommendations  {emotion, access_token}
//	POST /api/spotify/play             {access_token, track_uris, device_id?}
//	POST /api/spotify/pause            {access_token, device_id?}
//	GET  /api/spotify/devices          Authorization: Bearer <token>
//	POST /api/spotify/exchange-token   {code}
//	POST /api/user/preferences         acknowledged, not stored
//	GET  /api/openapi(.json)           embedded OpenAPI document
//
// # Errors
//
// Handlers return errors instead of writing them. [AsError] maps the engine's sentinels onto a status and
// an {"error", "message"} body; wrapped causes are never written to clients.
//
// # Middleware
//
// Applied in order: [RequestID], [Recoverer], [RequestLogger], [CORS], chi's RealIP, then [RateLimit].
//
// # OAuth Callback Handler
//
// [OAuthHandler] serves the redirect of the CLI login flow on a short-lived local server. It validates the
// state parameter, exchanges the code and sends the result through a channel exactly once.
package server
