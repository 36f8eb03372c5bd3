package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/desertthunder/moodmix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    services.Provider
	engine     tasks.Engine
	exchanger  *services.TokenExchanger
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Nil dependencies are built from Config.
type RunnerOpts struct {
	Config     *shared.Config
	Spotify    services.Provider
	Engine     tasks.Engine
	Exchanger  *services.TokenExchanger
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Provider.Timeout()}
	}
	if opts.Spotify == nil {
		opts.Spotify = services.NewSpotifyClient(opts.Config.Provider.APIURL, opts.HTTPClient)
	}
	if opts.Engine == nil {
		opts.Engine = tasks.NewMoodEngine(opts.Spotify, opts.Config.Provider.Market, opts.Logger)
	}
	if opts.Exchanger == nil {
		opts.Exchanger = services.NewTokenExchanger(
			opts.Config.Credentials.Spotify,
			opts.Config.Provider.AuthURL(),
			opts.Config.Provider.TokenURL(),
			opts.HTTPClient,
		)
	}
	if opts.API == nil {
		opts.API = services.NewAPIService("http://"+opts.Config.Server.Addr(), opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		spotify:    opts.Spotify,
		engine:     opts.Engine,
		exchanger:  opts.Exchanger,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

// loadConfig replaces the runner's configuration when --config was passed explicitly,
// rebuilding every dependency derived from it.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if !cmd.IsSet("config") {
		return nil
	}

	config, err := shared.ResolveConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	*r = *NewRunner(RunnerOpts{
		Config:     config,
		HTTPClient: r.httpClient,
		Logger:     r.logger,
		Output:     r.output,
		Input:      r.input,
	})
	shared.SetLogLevel(r.logger, config.Log.ParseLevel())
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, testConnectionCommand, statusCommand, spotifyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
