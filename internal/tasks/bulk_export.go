package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/views"
	"golang.org/x/time/rate"
)

// FormatJSON writes the full track list as indented JSON.
const FormatJSON = "json"

// ManifestName is the file written next to the exports.
const ManifestName = "export_manifest.json"

// ExportOpts contains configuration for bulk exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, text
	OutputDir  string  // Base output directory (default: spotify_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 5, max: 10)
	RateLimit  float64 // Catalog requests per second (default: 5)
	MaxTracks  int     // Tracks read per playlist, 0 reads all
}

// SourceResult is the outcome of exporting one source.
type SourceResult struct {
	Source  Source `json:"source"`
	Name    string `json:"name"`
	Tracks  int    `json:"tracks"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	index int
}

// ExportResult summarizes a bulk export and is written as the manifest.
type ExportResult struct {
	ExportID   string         `json:"export_id"`
	StartedAt  time.Time      `json:"started_at"`
	Format     string         `json:"format"`
	OutputDir  string         `json:"output_dir"`
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []SourceResult `json:"results"`
	Manifest   string         `json:"-"`
}

type exportJob struct {
	index  int
	source Source
	list   *formatter.TrackList
}

func normalizeFormat(raw string) (format, ext string, err error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case "", FormatJSON:
		return FormatJSON, "json", nil
	case formatter.FormatCSV:
		return f, "csv", nil
	case formatter.FormatMarkdown, "md":
		return formatter.FormatMarkdown, "md", nil
	case formatter.FormatText, "txt":
		return formatter.FormatText, "txt", nil
	default:
		return "", "", fmt.Errorf("%w: unknown format %q (want json, csv, markdown or text)", shared.ErrInvalidFlag, raw)
	}
}

// BulkExport exports albums and playlists concurrently with rate limiting and progress tracking.
//
// Catalog reads are paced by a single producer; writes are spread over a worker pool. One
// source failing does not stop the others. A manifest summarizing every source is written to
// the output directory.
func (e *Exporter) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, sources []Source, opts ExportOpts) (*ExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: nothing to export", shared.ErrMissingArgument)
	}

	format, ext, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("spotify_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	sources = dedupe(sources)

	mount := views.NewMount(ctx, "export", e.logger)
	defer mount.Unmount()

	e.sendProgress(prog, authorizeUpdate())
	if !mount.Authorize(e.tokens) {
		return nil, shared.ErrNotAuthenticated
	}
	token, ok := mount.Token()
	if !ok {
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, context.Cause(ctx))
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		ExportID:  shared.GenerateID(),
		StartedAt: time.Now().UTC(),
		Format:    format,
		OutputDir: opts.OutputDir,
		Total:     len(sources),
		Results:   make([]SourceResult, 0, len(sources)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(sources))
	results := make(chan SourceResult, len(sources))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(mount.Context(), &wg, jobs, results, opts.OutputDir, format, ext)
	}

	go func() {
		defer close(jobs)
		for i, src := range sources {
			if err := limiter.Wait(mount.Context()); err != nil {
				return
			}

			e.sendProgress(prog, fetchingSourceUpdate(i+1, len(sources), src))
			list, err := e.fetch(mount.Context(), token, src, opts.MaxTracks)
			if err != nil {
				e.logger.Warn("export fetch failed", "source", src, "error", err)
				results <- SourceResult{
					Source: src,
					Name:   fmt.Sprintf("Unknown (%s)", src),
					Error:  fmt.Sprintf("failed to fetch %s: %v", src.Kind, err),
					index:  i,
				}
				continue
			}
			jobs <- exportJob{index: i, source: src, list: list}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Successful++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(sources), res.Name, res.Tracks))
		} else {
			result.Failed++
			e.sendProgress(prog, exportFailedUpdate(completed, len(sources), res.Name, fmt.Errorf("%s", res.Error)))
		}
	}

	slices.SortFunc(result.Results, func(a, b SourceResult) int { return a.index - b.index })

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.Manifest = manifestPath

	e.logger.Info("export finished", "id", result.ExportID, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

// exportWorker writes track lists from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- SourceResult,
	dir, format, ext string,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			results <- SourceResult{Source: job.source, Name: job.list.Title, Error: ctx.Err().Error(), index: job.index}
			continue
		}
		results <- e.writeOne(job, dir, format, ext)
	}
}

// writeOne renders a single track list as <kind>-<id>.<ext>.
func (e *Exporter) writeOne(j exportJob, dir, format, ext string) SourceResult {
	result := SourceResult{
		Source: j.source,
		Name:   j.list.Title,
		Tracks: len(j.list.Tracks),
		index:  j.index,
	}

	var (
		data []byte
		err  error
	)
	if format == FormatJSON {
		data, err = shared.MarshalJSON(j.list, true)
	} else {
		data, err = formatter.Export(j.list, format)
	}
	if err != nil {
		result.Error = fmt.Sprintf("%s export failed: %v", format, err)
		return result
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", j.source.Kind, j.source.ID, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		result.Error = fmt.Sprintf("write failed: %v", err)
		return result
	}

	result.File = path
	result.Success = true
	return result
}

func dedupe(sources []Source) []Source {
	seen := make(map[Source]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
