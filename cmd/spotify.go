package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/moodmix/internal/formatter"
	"github.com/desertthunder/moodmix/internal/server"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const oauthTimeout = 2 * time.Minute

// SpotifyLogin runs the authorization code flow against a local callback server and prints the token.
func (r *Runner) SpotifyLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("%w (run `moodmix setup` first)", err)
	}

	token, err := r.doOAuth(ctx, r.config.Credentials.Spotify.RedirectURI)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(services.TokenPayload(token), true)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("\nexport SPOTIFY_ACCESS_TOKEN=%s\n", token.AccessToken)
	return nil
}

// SpotifyRecommend prints a recommendation for --emotion.
func (r *Runner) SpotifyRecommend(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	emotion := cmd.String("emotion")
	r.logger.Debugf("recommending tracks for %v", emotion)

	result, err := r.engine.Recommend(ctx, emotion, cmd.String("token"))
	if err != nil {
		return err
	}

	out, err := formatter.Render(result, format)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// SpotifyDevices lists the user's Spotify Connect devices.
func (r *Runner) SpotifyDevices(ctx context.Context, cmd *cli.Command) error {
	devices := r.engine.Devices(ctx, cmd.String("token"))

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"devices": devices}, true)
	}

	r.writePlainHeader(fmt.Sprintf("Spotify devices (%d)", len(devices)))
	_, err := r.output.Write(formatter.DevicesToText(devices))
	return err
}

// SpotifyPlay plays --uri values, or recommends for --emotion and plays the result.
func (r *Runner) SpotifyPlay(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	uris := cmd.StringSlice("uri")

	if emotion := cmd.String("emotion"); emotion != "" {
		if len(uris) > 0 {
			return fmt.Errorf("%w: use either --uri or --emotion", shared.ErrInvalidArgument)
		}

		result, err := r.engine.Recommend(ctx, emotion, token)
		if err != nil {
			return err
		}
		r.writePlain("Playlist: %s (%s)\n", result.PlaylistName, formatter.SourceLabel(result.Source))
		uris = result.TrackURIs
	}

	if len(uris) == 0 {
		return fmt.Errorf("%w: --uri or --emotion is required", shared.ErrMissingArgument)
	}

	status, err := r.engine.Play(ctx, token, uris, cmd.String("device"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Playing %d tracks", len(uris))
	if status.DeviceID != "" {
		r.writePlain(" on %s", status.DeviceID)
	}
	r.writePlain("\n")
	return nil
}

// SpotifyPause pauses playback.
func (r *Runner) SpotifyPause(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.engine.Pause(ctx, cmd.String("token"), cmd.String("device")); err != nil {
		return err
	}

	r.writePlain("✓ Paused\n")
	return nil
}

// doOAuth serves the redirect URI locally, sends the user to the consent page and waits for the callback.
func (r *Runner) doOAuth(ctx context.Context, redirectURI string) (*oauth2.Token, error) {
	redirect, err := url.Parse(redirectURI)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: redirect_uri %q is not an absolute URL", shared.ErrInvalidConfig, redirectURI)
	}

	addr := redirect.Host
	if redirect.Port() == "" {
		addr = net.JoinHostPort(redirect.Hostname(), "80")
	}

	state := shared.GenerateState()
	authURL := r.exchanger.AuthCodeURL(state)

	oauthHandler := server.NewOAuthHandler(r.exchanger.OAuthConfig(), state, redirect.Path, r.httpClient)
	router := chi.NewRouter()
	server.Mount(router, oauthHandler)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(oauthTimeout)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := result.Error(); err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
