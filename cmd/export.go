package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/tasks"
	"github.com/urfave/cli/v3"
)

// exportCommand writes albums and playlists to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export albums and playlists as track lists (album:<id>, playlist:<id> or links)",
		ArgsUsage: "<source>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default spotify_export_<epoch>)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers (1-10)",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Catalog requests per second",
				Value: 5,
			},
			&cli.IntFlag{
				Name:  "max-tracks",
				Usage: "Tracks read per playlist, 0 reads all",
			},
		},
		Action: r.Export,
	}
}

// Export runs a bulk export of the sources given as arguments.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one source (album:<id> or playlist:<id>)", shared.ErrMissingArgument)
	}

	sources := make([]tasks.Source, 0, len(args))
	for _, arg := range args {
		src, err := tasks.ParseSource(arg)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	tokens, err := r.tokenSource()
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportTracks:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	exporter := tasks.NewExporter(r.service(), tokens, r.logger)
	result, err := exporter.BulkExport(ctx, progressCh, sources, tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		MaxTracks:  cmd.Int("max-tracks"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("\nExported %d/%d to %s\n", result.Successful, result.Total, result.OutputDir)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s: %s\n", res.Source, res.Error)
		}
	}
	return nil
}
