package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ConfigInit writes a configuration file, prompting for credentials with --interactive.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", shared.ErrInvalidArgument, path)
	}

	if !cmd.Bool("interactive") {
		if exists {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to replace config file: %w", err)
			}
		}
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", path)
		return r.writePlain("✓ Wrote %s\nSet client_id and client_secret, or export SPOTAPP_CLIENT_ID and SPOTAPP_CLIENT_SECRET.\n", path)
	}

	if !isTerminal() {
		return fmt.Errorf("%w: --interactive needs a terminal", shared.ErrInvalidInput)
	}

	config := shared.DefaultConfig()
	if err := promptConfig(config); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := shared.SaveConfig(path, config); err != nil {
		return err
	}

	r.config = config
	r.logger.Info("config file saved", "path", path)
	return r.writePlain("✓ Saved %s\n", path)
}

// promptConfig asks for the client credentials and browsing defaults.
func promptConfig(config *shared.Config) error {
	creds := &config.Credentials.Spotify

	var countries []huh.Option[string]
	for _, code := range ui.Countries {
		countries = append(countries, huh.NewOption(fmt.Sprintf("%s (%s)", ui.CountryName(code), code), code))
	}

	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client ID").
				Description("From the Spotify developer dashboard").
				Validate(required).
				Value(&creds.ClientID),
			huh.NewInput().
				Title("Client secret").
				EchoMode(huh.EchoModePassword).
				Validate(required).
				Value(&creds.ClientSecret),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("New releases country").
				Options(countries...).
				Value(&config.Browse.Country),
			huh.NewInput().
				Title("Podcast search query").
				Value(&config.Browse.PodcastQuery),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("configuration cancelled: %w", err)
	}

	creds.ClientID = strings.TrimSpace(creds.ClientID)
	creds.ClientSecret = strings.TrimSpace(creds.ClientSecret)
	return nil
}

// ConfigShow prints the effective configuration with the client secret masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	config.Credentials.Spotify.ClientSecret = maskSecret(config.Credentials.Spotify.ClientSecret)

	if cmd.Bool("json") {
		return r.writeJSON(config, cmd.Bool("pretty"))
	}

	r.writePlain("# %s\n", r.configPath)
	if err := toml.NewEncoder(r.output).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
