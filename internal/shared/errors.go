package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// Provider call classification, matched by services.StatusError
	ErrAPIRequest           = fmt.Errorf("API request failed")
	ErrProviderUnauthorized = fmt.Errorf("provider rejected access token")
	ErrProviderForbidden    = fmt.Errorf("provider refused request")
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")

	// Errors surfaced to callers of the mood engine
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrNotFound        = fmt.Errorf("not found")
	ErrPremiumRequired = fmt.Errorf("spotify premium required")
	ErrNoActiveDevice  = fmt.Errorf("no active spotify devices found")
	ErrPlaybackFailed  = fmt.Errorf("failed to control playback")
	ErrUpstream        = fmt.Errorf("upstream provider failure")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
