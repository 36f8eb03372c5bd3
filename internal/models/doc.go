// Package models defines the values moodmix hands back to its callers.
//
//   - [Track] : a normalized Spotify track, tolerant of missing artist, preview and artwork
//   - [RecommendationResult] : up to ten tracks for an emotion with parallel URIs, the profile used and a [Source] tag
//   - [Device] : a Spotify Connect device
//   - [PlaybackStatus] : result of a play or pause command
//
// Everything here is built per request and discarded with the response; nothing is persisted.
package models
