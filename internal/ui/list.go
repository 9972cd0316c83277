package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/router"
	"github.com/desertthunder/spotapp/internal/shared"
)

// entry is a list row that may lead somewhere: another view, the web player or a preview clip.
type entry interface {
	list.DefaultItem
	Path() string
	URL() string
	Preview() string
}

var (
	_ entry = categoryItem{}
	_ entry = albumItem{}
	_ entry = playlistItem{}
	_ entry = trackItem{}
	_ entry = artistItem{}
	_ entry = showItem{}
	_ entry = episodeItem{}
)

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category models.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string { return "category" }
func (i categoryItem) Path() string        { return router.Build(router.Category, i.category.ID) }
func (i categoryItem) URL() string         { return "https://open.spotify.com/genre/" + i.category.ID }
func (i categoryItem) Preview() string     { return "" }

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Name }
func (i albumItem) Title() string       { return i.album.Name }
func (i albumItem) Description() string {
	parts := []string{}
	if names := models.ArtistNames(i.album.Artists); names != "" {
		parts = append(parts, names)
	}
	if i.album.ReleaseDate != "" {
		parts = append(parts, i.album.ReleaseDate)
	}
	if i.album.AlbumType != "" {
		parts = append(parts, i.album.AlbumType)
	}
	return strings.Join(parts, " • ")
}
func (i albumItem) Path() string    { return router.Build(router.Album, i.album.ID) }
func (i albumItem) URL() string     { return i.album.ExternalURLs.Spotify }
func (i albumItem) Preview() string { return "" }

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.Tracks.Total)
	if d := formatter.CleanDescription(i.playlist.Description, 60); d != "" {
		desc = fmt.Sprintf("%s • %s", desc, d)
	}
	return desc
}
func (i playlistItem) Path() string    { return router.Build(router.Playlist, i.playlist.ID) }
func (i playlistItem) URL() string     { return i.playlist.ExternalURLs.Spotify }
func (i playlistItem) Preview() string { return "" }

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string {
	if i.track.TrackNumber > 0 && i.track.Album.Name == "" {
		return fmt.Sprintf("%d. %s", i.track.TrackNumber, i.track.Name)
	}
	return i.track.Name
}
func (i trackItem) Description() string {
	parts := []string{models.ArtistNames(i.track.Artists), shared.FormatDuration(i.track.DurationMS)}
	if i.track.Album.Name != "" {
		parts = append(parts, i.track.Album.Name)
	}
	parts = append(parts, formatter.PreviewLabel(i.track.PreviewURL))
	return strings.Join(parts, " • ")
}
func (i trackItem) Path() string    { return router.Build(router.Track, i.track.ID) }
func (i trackItem) URL() string     { return i.track.ExternalURLs.Spotify }
func (i trackItem) Preview() string { return i.track.PreviewURL }

// artistItem wraps [models.SimpleArtist] to implement [list.Item].
type artistItem struct {
	artist models.SimpleArtist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string { return "artist" }
func (i artistItem) Path() string        { return router.Build(router.Artist, i.artist.ID) }
func (i artistItem) URL() string         { return i.artist.ExternalURLs.Spotify }
func (i artistItem) Preview() string     { return "" }

// showItem wraps [models.Show] to implement [list.Item].
type showItem struct {
	show models.Show
}

func (i showItem) FilterValue() string { return i.show.Name }
func (i showItem) Title() string       { return i.show.Name }
func (i showItem) Description() string { return i.show.Publisher }
func (i showItem) Path() string        { return router.Build(router.Podcast, i.show.ID) }
func (i showItem) URL() string         { return i.show.ExternalURLs.Spotify }
func (i showItem) Preview() string     { return "" }

// episodeItem wraps [models.Episode] to implement [list.Item]. Episodes have no view of their own.
type episodeItem struct {
	episode models.Episode
}

func (i episodeItem) FilterValue() string { return i.episode.Name }
func (i episodeItem) Title() string       { return i.episode.Name }
func (i episodeItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", shared.FormatDuration(i.episode.DurationMS), i.episode.ReleaseDate, formatter.PreviewLabel(i.episode.AudioPreviewURL))
}
func (i episodeItem) Path() string    { return "" }
func (i episodeItem) URL() string     { return i.episode.ExternalURLs.Spotify }
func (i episodeItem) Preview() string { return i.episode.AudioPreviewURL }

func categoryItems(categories []models.Category) []list.Item {
	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}
	return items
}

func albumItems(albums []models.Album) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, 0, len(playlists))
	for _, p := range playlists {
		if p.ID == "" {
			continue
		}
		items = append(items, playlistItem{playlist: p})
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}

func showItems(shows []models.Show) []list.Item {
	items := make([]list.Item, 0, len(shows))
	for _, s := range shows {
		if s.ID == "" {
			continue
		}
		items = append(items, showItem{show: s})
	}
	return items
}

func episodeItems(episodes []models.Episode) []list.Item {
	items := make([]list.Item, len(episodes))
	for i, e := range episodes {
		items[i] = episodeItem{episode: e}
	}
	return items
}
