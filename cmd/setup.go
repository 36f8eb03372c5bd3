package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/desertthunder/moodmix/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

func incomplete(creds shared.SpotifyConfig) bool {
	for _, v := range []string{creds.ClientID, creds.ClientSecret, creds.RedirectURI} {
		if v == "" || strings.HasPrefix(v, "your_") {
			return true
		}
	}
	return false
}

// Setup writes Spotify application credentials to the config file.
//
// Values come from flags; anything still missing is prompted for with an interactive form.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(shared.SpotifyDashboardURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Create an app at %s\n", shared.SpotifyDashboardURL)
		}
	}

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	}

	creds := config.Credentials.Spotify
	if v := cmd.String("client-id"); v != "" {
		creds.ClientID = v
	}
	if v := cmd.String("client-secret"); v != "" {
		creds.ClientSecret = v
	}
	if v := cmd.String("redirect-uri"); v != "" {
		creds.RedirectURI = v
	}

	if incomplete(creds) {
		var err error
		if creds, err = ui.RunSetup(ctx, creds, r.input, r.output); err != nil {
			return err
		}
	}
	config.Credentials.Spotify = creds

	if err := config.Validate(); err != nil {
		return err
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("%s", ui.Styles.Ok(fmt.Sprintf("Credentials saved to %s", configPath)))
	r.writePlain("\nNext steps:\n")
	r.writePlain("  1. Add %s as a redirect URI in the Spotify dashboard\n", creds.RedirectURI)
	r.writePlain("  2. Run: moodmix test-connection\n")
	r.writePlain("  3. Run: moodmix serve\n")
	return nil
}

// TestConnection requests an app token with the configured credentials.
func (r *Runner) TestConnection(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		r.writePlain("%s\n", ui.Styles.Err("Spotify credentials are not configured"))
		r.writePlain("%s\n", ui.Styles.Help("Run: moodmix setup"))
		return err
	}

	creds := r.config.Credentials.Spotify
	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     r.config.Provider.TokenURL(),
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	r.writePlain("→ Testing Spotify credentials...\n")
	r.logger.Debug("requesting client credentials token", "url", cc.TokenURL)

	if _, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)); err != nil {
		r.writePlain("%s\n", ui.Styles.Err("Spotify rejected the credentials"))
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	r.writePlain("%s\n", ui.Styles.Ok("Spotify credentials are valid"))
	r.writePlain("\n%s\n", ui.Styles.Help(fmt.Sprintf("Make sure %s is registered as a redirect URI for user login.", creds.RedirectURI)))
	return nil
}

// Status reports the health of a running server.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	api := r.api
	if u := cmd.String("url"); u != "" {
		api = services.NewAPIService(u, r.httpClient)
	}

	resp, err := api.Get(ctx, "/api/health")
	if err != nil {
		r.writePlain("%s\n", ui.Styles.Err("Service is unreachable"))
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		r.writePlain("%s\n", ui.Styles.Err("Service is unhealthy"))
		return fmt.Errorf("%w: health check returned %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	status, _ := resp.Field("status")
	timestamp, _ := resp.Field("timestamp")

	r.writePlain("%s\n", ui.Styles.Ok("Service is healthy"))
	r.writePlain("  Status:    %s\n", status)
	r.writePlain("  Timestamp: %s\n", timestamp)
	return nil
}
