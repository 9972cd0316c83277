package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotapp/internal/router"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/spotapp-tui.log"

// TUI launches the interactive browser at the given path or Spotify link.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	path, err := startPath(cmd.StringArg("path"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logFile := r.config.Log.File
	if logFile == "" {
		logFile = defaultTUILog
	}
	fileLogger, logCloser, err := shared.NewFileLogger(logFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logCloser.Close()
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	tokens, err := r.tokenSource()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Options{
		Catalog:   r.service(),
		Tokens:    tokens,
		Browse:    r.config.Browse,
		Preview:   r.config.Preview,
		Logger:    fileLogger,
		StartPath: path,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// startPath turns the tui argument into a route path. open.spotify.com links and spotify: URIs
// are converted; bare paths get a leading slash.
func startPath(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return router.Home, nil
	case router.IsSpotifyURL(arg):
		return router.FromSpotifyURL(arg)
	case !strings.HasPrefix(arg, "/"):
		return "/" + arg, nil
	default:
		return arg, nil
	}
}
