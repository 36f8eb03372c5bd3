package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
	"golang.org/x/oauth2"
)

// Scopes requested during user authorization.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-modify-playback-state",
	"user-read-playback-state",
	"user-top-read",
	"streaming",
}

// TokenExchanger relays OAuth2 authorization-code exchanges to the Spotify accounts service.
// It keeps no tokens.
type TokenExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewTokenExchanger builds an exchanger from app credentials.
//
// authURL and tokenURL default to the Spotify accounts endpoints when empty. Client credentials are
// posted in the form body.
func NewTokenExchanger(creds shared.SpotifyConfig, authURL, tokenURL string, client *http.Client) *TokenExchanger {
	if authURL == "" {
		authURL = spotifyAuthURL
	}
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &TokenExchanger{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: client,
	}
}

// OAuthConfig exposes the underlying [oauth2.Config], e.g. for a local callback handler.
func (t *TokenExchanger) OAuthConfig() *oauth2.Config {
	return t.config
}

// AuthCodeURL returns the URL the user visits to grant access.
func (t *TokenExchanger) AuthCodeURL(state string) string {
	return t.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Context attaches the exchanger's HTTP client for use by [oauth2.Config] calls.
func (t *TokenExchanger) Context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, t.httpClient)
}

// Exchange trades an authorization code for tokens and returns the token payload.
//
// A rejection by the token endpoint is [shared.ErrAuthFailed]; transport failures and 5xx answers are
// [shared.ErrUpstream].
func (t *TokenExchanger) Exchange(ctx context.Context, code string) (map[string]any, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: no authorization code provided", shared.ErrMissingArgument)
	}

	token, err := t.config.Exchange(t.Context(ctx), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && (re.Response == nil || re.Response.StatusCode < http.StatusInternalServerError) {
			return nil, fmt.Errorf("%w: failed to exchange code: %v", shared.ErrAuthFailed, err)
		}
		return nil, fmt.Errorf("%w: token request failed: %v", shared.ErrUpstream, err)
	}

	return TokenPayload(token), nil
}

// TokenPayload rebuilds the token endpoint's JSON body from an [oauth2.Token].
func TokenPayload(token *oauth2.Token) map[string]any {
	payload := map[string]any{
		"access_token": token.AccessToken,
		"token_type":   token.Type(),
	}

	if v := token.Extra("expires_in"); v != nil {
		payload["expires_in"] = v
	} else if !token.Expiry.IsZero() {
		payload["expires_in"] = int(time.Until(token.Expiry).Seconds())
	}

	if token.RefreshToken != "" {
		payload["refresh_token"] = token.RefreshToken
	}

	if v := token.Extra("scope"); v != nil {
		payload["scope"] = v
	}

	return payload
}
