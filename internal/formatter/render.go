package formatter

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/dustin/go-humanize"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Followers renders a follower count with thousands separators.
func Followers(n int) string {
	if n == 1 {
		return "1 follower"
	}
	return humanize.Comma(int64(n)) + " followers"
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// ReleaseDate renders an API release date at its own precision (day, month or year) followed by its age.
func ReleaseDate(date string) string {
	layouts := []struct {
		layout string
		output string
	}{
		{"2006-01-02", "2 Jan 2006"},
		{"2006-01", "Jan 2006"},
		{"2006", "2006"},
	}

	for _, l := range layouts {
		t, err := time.Parse(l.layout, date)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%s (%s)", t.Format(l.output), humanize.Time(t))
	}
	return date
}

// Popularity renders the 0..100 popularity score.
func Popularity(p int) string {
	return fmt.Sprintf("%d/100", max(0, min(p, 100)))
}

// PageFooter renders the pagination status of a listing.
func PageFooter(index, lastPage, total int) string {
	pages := max(lastPage+1, 1)
	return fmt.Sprintf("Page %d of %d (%s results)", index+1, pages, Count(total))
}

// CleanDescription strips markup from API descriptions and truncates them to width runes (0 keeps everything).
func CleanDescription(s string, width int) string {
	s = html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
	s = strings.Join(strings.Fields(s), " ")
	return Truncate(s, width)
}

// Truncate shortens s to width runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// ImageOrPlaceholder returns the best image URL or a placeholder when the resource has none.
func ImageOrPlaceholder(images []models.Image) string {
	if url := models.BestImage(images); url != "" {
		return url
	}
	return "(no image)"
}

// Genres joins genres, or says there are none.
func Genres(genres []string) string {
	if len(genres) == 0 {
		return "no genres listed"
	}
	return strings.Join(genres, ", ")
}

// PreviewLabel describes whether a preview clip is available.
func PreviewLabel(url string) string {
	if url == "" {
		return "no preview"
	}
	return "▶ preview"
}

// AlbumSummary renders album metadata as labelled lines.
func AlbumSummary(a *models.Album) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", a.Name)
	fmt.Fprintf(&b, "Artists:  %s\n", models.ArtistNames(a.Artists))
	fmt.Fprintf(&b, "Type:     %s\n", a.AlbumType)
	fmt.Fprintf(&b, "Released: %s\n", ReleaseDate(a.ReleaseDate))
	fmt.Fprintf(&b, "Tracks:   %d\n", a.TotalTracks)
	if a.Label != "" {
		fmt.Fprintf(&b, "Label:    %s\n", a.Label)
	}
	fmt.Fprintf(&b, "Cover:    %s\n", ImageOrPlaceholder(a.Images))
	return b.String()
}

// TrackSummary renders track metadata as labelled lines.
func TrackSummary(t *models.Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Name)
	fmt.Fprintf(&b, "Artists:    %s\n", models.ArtistNames(t.Artists))
	fmt.Fprintf(&b, "Album:      %s\n", t.Album.Name)
	fmt.Fprintf(&b, "Duration:   %s\n", shared.FormatDuration(t.DurationMS))
	fmt.Fprintf(&b, "Popularity: %s\n", Popularity(t.Popularity))
	fmt.Fprintf(&b, "Preview:    %s\n", PreviewLabel(t.PreviewURL))
	return b.String()
}

// ArtistSummary renders artist metadata as labelled lines.
func ArtistSummary(a *models.Artist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", a.Name)
	fmt.Fprintf(&b, "Followers:  %s\n", Followers(a.Followers.Total))
	fmt.Fprintf(&b, "Popularity: %s\n", Popularity(a.Popularity))
	fmt.Fprintf(&b, "Genres:     %s\n", Genres(a.Genres))
	fmt.Fprintf(&b, "Image:      %s\n", ImageOrPlaceholder(a.Images))
	return b.String()
}

// PlaylistSummary renders playlist metadata as labelled lines.
func PlaylistSummary(p *models.Playlist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	if p.Owner.DisplayName != "" {
		fmt.Fprintf(&b, "Owner:  %s\n", p.Owner.DisplayName)
	}
	fmt.Fprintf(&b, "Tracks: %s\n", Count(p.Tracks.Total))
	if d := CleanDescription(p.Description, 0); d != "" {
		fmt.Fprintf(&b, "About:  %s\n", d)
	}
	fmt.Fprintf(&b, "Cover:  %s\n", ImageOrPlaceholder(p.Images))
	return b.String()
}

// ShowSummary renders podcast metadata as labelled lines.
func ShowSummary(s *models.Show) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Name)
	fmt.Fprintf(&b, "Publisher: %s\n", s.Publisher)
	fmt.Fprintf(&b, "Episodes:  %s\n", Count(s.TotalEpisodes))
	if d := CleanDescription(s.Description, 200); d != "" {
		fmt.Fprintf(&b, "About:     %s\n", d)
	}
	return b.String()
}

// EpisodeLine renders one episode as a single line.
func EpisodeLine(e models.Episode) string {
	return fmt.Sprintf("%s (%s, %s)", e.Name, shared.FormatDuration(e.DurationMS), e.ReleaseDate)
}

// TrackLine renders one track as a single line.
func TrackLine(t models.SimpleTrack) string {
	return fmt.Sprintf("%s - %s (%s)", models.ArtistNames(t.Artists), t.Name, shared.FormatDuration(t.DurationMS))
}
