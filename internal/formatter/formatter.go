// package formatter renders catalog data as CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/shared"
)

// Export formats accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// TrackList is a titled list of tracks: an album's tracks, a playlist page or search results.
type TrackList struct {
	Title       string
	Subtitle    string
	Description string
	ImageURL    string
	URL         string
	Tracks      []models.Track
}

// FromAlbum builds a [TrackList] from an album and its embedded track page.
func FromAlbum(album *models.Album) *TrackList {
	list := &TrackList{
		Title:    album.Name,
		Subtitle: models.ArtistNames(album.Artists),
		ImageURL: models.BestImage(album.Images),
		URL:      album.ExternalURLs.Spotify,
	}
	if album.Tracks != nil {
		for _, st := range album.Tracks.Items {
			list.Tracks = append(list.Tracks, models.Track{SimpleTrack: st, Album: models.Album{ID: album.ID, Name: album.Name}})
		}
	}
	return list
}

// FromPlaylist builds a [TrackList] from a playlist and a page of its items. Removed items are skipped.
func FromPlaylist(playlist *models.Playlist, items []models.PlaylistItem) *TrackList {
	list := &TrackList{
		Title:       playlist.Name,
		Subtitle:    playlist.Owner.DisplayName,
		Description: playlist.Description,
		ImageURL:    models.BestImage(playlist.Images),
		URL:         playlist.ExternalURLs.Spotify,
	}
	for _, item := range items {
		if item.Track != nil {
			list.Tracks = append(list.Tracks, *item.Track)
		}
	}
	return list
}

// Export renders list in the named format.
func Export(list *TrackList, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(list)
	case FormatMarkdown, "md":
		return ExportToMarkdown(list)
	case FormatText, "":
		return ExportToText(list)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want csv, markdown or text)", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts a TrackList to CSV format with columns: #, ID, Title, Artists, Album, Duration, Preview
func ExportToCSV(list *TrackList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"#", "ID", "Title", "Artists", "Album", "Duration", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range list.Tracks {
		record := []string{
			strconv.Itoa(i + 1),
			track.ID,
			track.Name,
			models.ArtistNames(track.Artists),
			track.Album.Name,
			shared.FormatDuration(track.DurationMS),
			track.PreviewURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a TrackList to Markdown format, linking the cover image when present
func ExportToMarkdown(list *TrackList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", list.Title))

	if list.ImageURL != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", list.ImageURL))
	}

	if list.Subtitle != "" {
		buf.WriteString(fmt.Sprintf("**By**: %s\n\n", list.Subtitle))
	}

	if list.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", list.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(list.Tracks)))
	if list.URL != "" {
		buf.WriteString(fmt.Sprintf("**Listen**: <%s>\n", list.URL))
	}
	buf.WriteString("\n## Tracks\n\n")

	for i, track := range list.Tracks {
		duration := shared.FormatDuration(track.DurationMS)
		preview := ""
		if track.HasPreview() {
			preview = fmt.Sprintf(" ([preview](%s))", track.PreviewURL)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]%s\n", i+1, models.ArtistNames(track.Artists), track.Name, duration, preview))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a TrackList to plain text format
func ExportToText(list *TrackList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", list.Title))
	if list.Subtitle != "" {
		buf.WriteString(fmt.Sprintf("By: %s\n", list.Subtitle))
	}
	if list.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", list.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(list.Tracks)))

	for i, track := range list.Tracks {
		buf.WriteString(fmt.Sprintf("%2d. %s - %s (%s)\n", i+1, models.ArtistNames(track.Artists), track.Name, shared.FormatDuration(track.DurationMS)))
	}

	return buf.Bytes(), nil
}
