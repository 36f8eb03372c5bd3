// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/moodmix/internal/formatter"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func tokenFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "token",
		Aliases:  []string{"t"},
		Usage:    "Spotify user access token (see `moodmix spotify login`)",
		Sources:  cli.EnvVars("SPOTIFY_ACCESS_TOKEN"),
		Required: true,
	}
}

func deviceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Spotify Connect device id (defaults to the first device)",
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config and PORT)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand writes Spotify application credentials into the config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure Spotify application credentials",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "client-id",
				Usage: "Spotify application client id",
			},
			&cli.StringFlag{
				Name:  "client-secret",
				Usage: "Spotify application client secret",
			},
			&cli.StringFlag{
				Name:  "redirect-uri",
				Usage: "Redirect URI registered for the application",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the Spotify developer dashboard in a browser",
			},
		},
		Action: r.Setup,
	}
}

// testConnectionCommand checks the configured credentials against the accounts service
func testConnectionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "test-connection",
		Usage:  "Verify Spotify credentials with a client credentials grant",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TestConnection,
	}
}

// statusCommand checks a running server
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check the health of a running moodmix server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Base URL of the server (defaults to the configured host and port)",
			},
		},
		Action: r.Status,
	}
}

// spotifyCommand runs the mood engine from the terminal
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Recommendations and playback against the Spotify API",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize with Spotify in the browser and print an access token",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full token payload as JSON",
					},
				},
				Action: r.SpotifyLogin,
			},
			{
				Name:  "recommend",
				Usage: "Recommend tracks for an emotion",
				Flags: []cli.Flag{
					tokenFlag(),
					&cli.StringFlag{
						Name:     "emotion",
						Aliases:  []string{"e"},
						Usage:    "happy, sad, angry, relaxed, surprised, fearful, disgusted or neutral",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: " + formatNames(),
						Value:   string(formatter.Text),
					},
				},
				Action: r.SpotifyRecommend,
			},
			{
				Name:  "devices",
				Usage: "List Spotify Connect devices",
				Flags: []cli.Flag{
					tokenFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyDevices,
			},
			{
				Name:  "play",
				Usage: "Start playback of track URIs, or of a fresh mix for --emotion",
				Flags: []cli.Flag{
					tokenFlag(),
					deviceFlag(),
					&cli.StringSliceFlag{
						Name:  "uri",
						Usage: "Track URI to play (repeatable)",
					},
					&cli.StringFlag{
						Name:    "emotion",
						Aliases: []string{"e"},
						Usage:   "Recommend tracks for this emotion and play them",
					},
				},
				Action: r.SpotifyPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Flags:  []cli.Flag{tokenFlag(), deviceFlag()},
				Action: r.SpotifyPause,
			},
		},
	}
}

func formatNames() string {
	names := ""
	for i, f := range formatter.Formats {
		if i > 0 {
			names += ", "
		}
		names += string(f)
	}
	return names
}
