// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// globalFlags apply to every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Track list format: text, csv or markdown (export also takes json)",
		},
	}
}

func pageFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Page number, starting at 1",
		Value:   1,
	}
}

// categoriesCommand lists browse categories
func categoriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "categories",
		Aliases: []string{"home"},
		Usage:   "List browse categories",
		Flags:   []cli.Flag{pageFlag()},
		Action:  r.Categories,
	}
}

// categoryCommand shows one category and its playlists
func categoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "category",
		Usage:     "Show a category and its playlists",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{pageFlag()},
		Action:    r.Category,
	}
}

// albumsCommand lists new releases
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"new-releases"},
		Usage:   "List new releases for a country",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "country",
				Usage: "ISO 3166-1 alpha-2 country code (defaults to browse.country)",
			},
			pageFlag(),
		},
		Action: r.Albums,
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Show an album and its tracks",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Album,
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Show a track",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Track,
	}
}

func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "Show an artist and their albums",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{pageFlag()},
		Action:    r.Artist,
	}
}

// playlistsCommand lists featured playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "playlists",
		Usage:  "List featured playlists",
		Flags:  []cli.Flag{pageFlag()},
		Action: r.Playlists,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Show a playlist and a page of its tracks",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{pageFlag()},
		Action:    r.Playlist,
	}
}

// podcastsCommand searches shows
func podcastsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "podcasts",
		Usage:     "Search podcasts (defaults to browse.podcast_query)",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags:     []cli.Flag{pageFlag()},
		Action:    r.Podcasts,
	}
}

func podcastCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "podcast",
		Usage:     "Show a podcast and its episodes",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Action:    r.Podcast,
	}
}

// searchCommand searches the catalog
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Result types: track, artist, album, playlist, show",
				Value:   []string{"track"},
			},
			pageFlag(),
		},
		Action: r.Search,
	}
}

// tokenCommand checks the client credentials
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Check that the client credentials can obtain an access token",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Print the access token",
			},
		},
		Action: r.Token,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Launch the interactive browser at a path or open.spotify.com link",
		Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
		Action:    r.TUI,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Prompt for the client credentials",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with the secret masked",
				Action: r.ConfigShow,
			},
		},
	}
}
