// package services defines interface Catalog for reading the Spotify Web API
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotapp/internal/models"
)

// Catalog is the read-only surface of the music catalog API. Every method takes the bearer
// token of the calling view's mount; nothing is written upstream.
type Catalog interface {
	// Categories lists browse categories.
	Categories(ctx context.Context, token string, limit, offset int) (*models.Paging[models.Category], error)

	// Category retrieves a single browse category.
	Category(ctx context.Context, token, categoryID string) (*models.Category, error)

	// CategoryPlaylists lists the playlists filed under a category.
	CategoryPlaylists(ctx context.Context, token, categoryID string, limit, offset int) (*models.Paging[models.Playlist], error)

	// NewReleases lists newly released albums for a country.
	NewReleases(ctx context.Context, token, country string, limit, offset int) (*models.Paging[models.Album], error)

	// FeaturedPlaylists lists editorially featured playlists.
	FeaturedPlaylists(ctx context.Context, token string, limit, offset int) (*models.Paging[models.Playlist], error)

	Album(ctx context.Context, token, albumID string) (*models.Album, error)
	Track(ctx context.Context, token, trackID string) (*models.Track, error)
	Artist(ctx context.Context, token, artistID string) (*models.Artist, error)

	// ArtistAlbums lists the albums of an artist.
	ArtistAlbums(ctx context.Context, token, artistID string, limit, offset int) (*models.Paging[models.Album], error)

	Playlist(ctx context.Context, token, playlistID string) (*models.Playlist, error)

	// PlaylistTracks lists the items of a playlist.
	PlaylistTracks(ctx context.Context, token, playlistID string, limit, offset int) (*models.Paging[models.PlaylistItem], error)

	// SearchShows searches podcasts available in market.
	SearchShows(ctx context.Context, token, query, market string, limit, offset int) (*models.Paging[models.Show], error)

	// Show retrieves a podcast with its first page of episodes.
	Show(ctx context.Context, token, showID, market string) (*models.Show, error)

	// Search runs a catalog search over the requested types.
	Search(ctx context.Context, token string, opts SearchOptions) (*models.SearchResult, error)
}

// Search types accepted by [Catalog.Search].
const (
	SearchTrack    = "track"
	SearchArtist   = "artist"
	SearchAlbum    = "album"
	SearchPlaylist = "playlist"
	SearchShow     = "show"
)

// SearchTypes lists every supported search type.
var SearchTypes = []string{SearchTrack, SearchArtist, SearchAlbum, SearchPlaylist, SearchShow}

// SearchOptions describes a search request. Types defaults to tracks.
type SearchOptions struct {
	Query  string
	Types  []string
	Market string
	Limit  int
	Offset int
}

// APIError represents a Spotify API error response.
type APIError struct {
	ErrorInfo struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error %d: %s", e.ErrorInfo.Status, e.ErrorInfo.Message)
}

// Status returns the HTTP status reported in the error body.
func (e *APIError) Status() int {
	return e.ErrorInfo.Status
}
