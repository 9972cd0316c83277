// Package tasks runs catalog operations that span several resources with real-time progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes albums and playlists to disk as track lists:
//
//   - A single producer fetches each [Source] under a rate limiter
//   - Playlists are read page by page until the reported total (or [ExportOpts.MaxTracks])
//   - A worker pool renders each list as json, csv, markdown or text and writes <kind>-<id>.<ext>
//   - A manifest ([ManifestName]) records every source, successful or not
//
// The export runs on one view mount: its token is exchanged once and shared by every request,
// and cancelling the context stops outstanding fetches.
//
// # Progress Reporting
//
// Progress is sent on an optional channel as [ProgressUpdate] values. Sends use select with
// default, so a slow or absent reader never blocks the export.
package tasks
