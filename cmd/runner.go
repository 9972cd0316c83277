package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/views"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	tokens     auth.TokenSource
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Tokens     auth.TokenSource
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		tokens:     opts.Tokens,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger used by commands and the services built after the call.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "spotapp",
		Usage:    "Browse the Spotify catalog from the terminal",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.configure,
		Commands: r.register(),
		Writer:   r.output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		categoriesCommand, categoryCommand, albumsCommand, albumCommand, trackCommand, artistCommand,
		playlistsCommand, playlistCommand, podcastsCommand, podcastCommand, searchCommand,
		exportCommand, tokenCommand, tuiCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file named by --config when it exists, applies environment
// overrides and the log level.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	shared.ApplyEnvOverrides(r.config)
	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))
	return ctx, nil
}

// service returns the catalog client, building it from the config on first use.
func (r *Runner) service() services.Catalog {
	if r.catalog == nil {
		r.catalog = services.NewSpotifyService(services.SpotifyOptions{
			BaseURL:           r.config.API.BaseURL,
			HTTPClient:        r.httpClient,
			RequestsPerSecond: r.config.API.RequestsPerSecond,
			Logger:            r.logger,
		})
	}
	return r.catalog
}

// tokenSource returns the credential provider, building it from the config on first use.
func (r *Runner) tokenSource() (auth.TokenSource, error) {
	if r.tokens != nil {
		return r.tokens, nil
	}

	if !r.config.HasCredentials() {
		return nil, fmt.Errorf("%w (run `spotapp config init` or set SPOTAPP_CLIENT_ID and SPOTAPP_CLIENT_SECRET)", shared.ErrMissingCredentials)
	}

	provider, err := auth.NewProvider(r.config.Credentials.Spotify, r.config.API.TokenURL, r.logger)
	if err != nil {
		return nil, err
	}
	r.tokens = provider
	return provider, nil
}

// mount starts a view for one command and exchanges its token. The caller unmounts it.
func (r *Runner) mount(ctx context.Context, view string) (*views.Mount, error) {
	tokens, err := r.tokenSource()
	if err != nil {
		return nil, err
	}

	mt := views.NewMount(ctx, view, r.logger)
	if !mt.Authorize(tokens) {
		mt.Unmount()
		return nil, fmt.Errorf("%w: token exchange failed, check the client credentials", shared.ErrNotAuthenticated)
	}
	return mt, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
