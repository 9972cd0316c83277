package models

import (
	"strings"
	"time"
)

// Image represents an image resource. Height and width are null for some categories.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// Followers represents follower information.
type Followers struct {
	Total int `json:"total"`
}

// ExternalURLs contains external URLs for a resource.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Owner is the user that owns a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Paging is the envelope the API uses for every paginated collection.
type Paging[T any] struct {
	Items    []T     `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Category is a browsable genre or mood grouping.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Href  string  `json:"href"`
	Icons []Image `json:"icons"`
}

// SimpleArtist is the artist reference embedded in albums and tracks.
type SimpleArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Artist is a performer.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Followers    Followers    `json:"followers"`
	Popularity   int          `json:"popularity"`
	Genres       []string     `json:"genres"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// SimpleTrack is a track as listed inside an album.
type SimpleTrack struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DurationMS   int            `json:"duration_ms"`
	PreviewURL   string         `json:"preview_url"`
	TrackNumber  int            `json:"track_number"`
	Explicit     bool           `json:"explicit"`
	Artists      []SimpleArtist `json:"artists"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
}

// Track is a single recording with its parent album.
type Track struct {
	SimpleTrack
	Popularity int   `json:"popularity"`
	Album      Album `json:"album"`
}

// Album is a release.
type Album struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	AlbumType    string               `json:"album_type"`
	ReleaseDate  string               `json:"release_date"`
	TotalTracks  int                  `json:"total_tracks"`
	Label        string               `json:"label,omitempty"`
	Popularity   int                  `json:"popularity,omitempty"`
	Artists      []SimpleArtist       `json:"artists"`
	Images       []Image              `json:"images"`
	Tracks       *Paging[SimpleTrack] `json:"tracks,omitempty"`
	ExternalURLs ExternalURLs         `json:"external_urls"`
}

// Playlist is an ordered collection of tracks.
type Playlist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Images       []Image      `json:"images"`
	Owner        Owner        `json:"owner"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Tracks       struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// PlaylistItem is one entry of a playlist's track listing. Track is nil for local or removed items.
type PlaylistItem struct {
	AddedAt string `json:"added_at"`
	Track   *Track `json:"track"`
}

// Show is a podcast.
type Show struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Publisher     string           `json:"publisher"`
	Description   string           `json:"description"`
	MediaType     string           `json:"media_type"`
	TotalEpisodes int              `json:"total_episodes"`
	Images        []Image          `json:"images"`
	Episodes      *Paging[Episode] `json:"episodes,omitempty"`
	ExternalURLs  ExternalURLs     `json:"external_urls"`
}

// Episode is a single podcast episode.
type Episode struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	DurationMS      int          `json:"duration_ms"`
	ReleaseDate     string       `json:"release_date"`
	AudioPreviewURL string       `json:"audio_preview_url"`
	Images          []Image      `json:"images"`
	ExternalURLs    ExternalURLs `json:"external_urls"`
}

// SearchResult holds the collections returned by the search endpoint; only requested types are non-nil.
type SearchResult struct {
	Tracks    *Paging[Track]    `json:"tracks,omitempty"`
	Artists   *Paging[Artist]   `json:"artists,omitempty"`
	Albums    *Paging[Album]    `json:"albums,omitempty"`
	Playlists *Paging[Playlist] `json:"playlists,omitempty"`
	Shows     *Paging[Show]     `json:"shows,omitempty"`
}

// BestImage returns the URL of the first (largest) image, or "" when there is none.
func BestImage(images []Image) string {
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}

// ArtistNames joins artist names with ", ".
func ArtistNames(artists []SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// Duration converts the track length to a [time.Duration].
func (t SimpleTrack) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Duration converts the episode length to a [time.Duration].
func (e Episode) Duration() time.Duration {
	return time.Duration(e.DurationMS) * time.Millisecond
}

// HasPreview reports whether the track carries a preview clip.
func (t SimpleTrack) HasPreview() bool { return t.PreviewURL != "" }

// HasPreview reports whether the episode carries a preview clip.
func (e Episode) HasPreview() bool { return e.AudioPreviewURL != "" }
