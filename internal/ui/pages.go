package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/preview"
	"github.com/desertthunder/spotapp/internal/router"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/views"
)

// Countries the new releases view cycles through.
var Countries = []string{"US", "GB", "JP", "PL", "FR", "DE", "AU", "SE"}

var countryNames = map[string]string{
	"US": "United States",
	"GB": "United Kingdom",
	"JP": "Japan",
	"PL": "Poland",
	"FR": "France",
	"DE": "Germany",
	"AU": "Australia",
	"SE": "Sweden",
}

// CountryName returns the display name of a market code, or the code itself.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// nextCountry returns the country after code in [Countries], wrapping around.
func nextCountry(code string) string {
	for i, c := range Countries {
		if c == code {
			return Countries[(i+1)%len(Countries)]
		}
	}
	return Countries[0]
}

// env is what page factories need from the program.
type env struct {
	catalog services.Catalog
	tokens  auth.TokenSource
	browse  shared.BrowseConfig
	logger  *log.Logger
}

type pageFactory func(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page

// routes builds the route table of the TUI.
func routes() *router.Router[pageFactory] {
	r := router.New[pageFactory]()
	r.Handle(router.Home, categoriesPage)
	r.Handle(router.Category, categoryPage)
	r.Handle(router.Albums, newReleasesPage)
	r.Handle(router.Album, albumPage)
	r.Handle(router.Track, trackPage)
	r.Handle(router.Artist, artistPage)
	r.Handle(router.Playlists, featuredPage)
	r.Handle(router.Playlist, playlistPage)
	r.Handle(router.Podcasts, podcastsPage)
	r.Handle(router.PodcastSearch, podcastsPage)
	r.Handle(router.Podcast, podcastPage)
	r.Handle(router.Search, searchPage)
	return r
}

// pageOf converts an API page into list rows.
func pageOf[T any](pg *models.Paging[T], err error, rows func([]T) []list.Item) (views.Page[list.Item], error) {
	if err != nil {
		return views.Page[list.Item]{}, err
	}
	return views.Page[list.Item]{Items: rows(pg.Items), Total: pg.Total}, nil
}

func categoriesPage(e *env, path string, mt *views.Mount, ch *preview.Channel, _ router.Params) *page {
	p := newPage(path, "Browse categories", mt, ch)
	p.listing = views.NewListing(mt, e.browse.CategoryLimit, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.Categories(ctx, req.Token, req.Limit, req.Offset)
		return pageOf(pg, err, categoryItems)
	})
	return p
}

func categoryPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	id := params.Get("id")
	p := newPage(path, "Category", mt, ch)

	detail := views.NewDetail(mt, id, func(ctx context.Context, req views.Request) (*models.Category, error) {
		return e.catalog.Category(ctx, req.Token, req.ID)
	})
	p.header = newHeader(detail,
		func(c *models.Category) string { return fmt.Sprintf("%s\nIcon: %s\n", c.Name, formatter.ImageOrPlaceholder(c.Icons)) },
		func(c *models.Category) string { return "https://open.spotify.com/genre/" + c.ID },
		nil,
	)

	p.listing = views.NewListing(mt, e.browse.CategoryPlaylistLimit, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.CategoryPlaylists(ctx, req.Token, id, req.Limit, req.Offset)
		return pageOf(pg, err, playlistItems)
	})
	return p
}

func newReleasesPage(e *env, path string, mt *views.Mount, ch *preview.Channel, _ router.Params) *page {
	p := newPage(path, "New releases", mt, ch)

	listing := views.NewListing(mt, e.browse.PageSize, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.NewReleases(ctx, req.Token, req.Query, req.Limit, req.Offset)
		return pageOf(pg, err, albumItems)
	})
	listing.SetQuery(e.browse.Country)

	p.listing = listing
	p.cycle = func() bool { return listing.SetQuery(nextCountry(listing.Query())) }
	p.subtitle = func() string { return CountryName(listing.Query()) }
	return p
}

func albumPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	p := newPage(path, "Album", mt, ch)

	detail := views.NewDetail(mt, params.Get("albumId"), func(ctx context.Context, req views.Request) (*models.Album, error) {
		return e.catalog.Album(ctx, req.Token, req.ID)
	})
	p.header = newHeader(detail,
		formatter.AlbumSummary,
		func(a *models.Album) string { return a.ExternalURLs.Spotify },
		func(a *models.Album) []list.Item {
			var items []list.Item
			if a.Tracks != nil {
				for _, st := range a.Tracks.Items {
					items = append(items, trackItem{track: models.Track{SimpleTrack: st}})
				}
			}
			for _, artist := range a.Artists {
				items = append(items, artistItem{artist: artist})
			}
			return items
		},
	)
	return p
}

func trackPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	p := newPage(path, "Track", mt, ch)

	detail := views.NewDetail(mt, params.Get("trackId"), func(ctx context.Context, req views.Request) (*models.Track, error) {
		return e.catalog.Track(ctx, req.Token, req.ID)
	})
	p.header = newHeader(detail,
		formatter.TrackSummary,
		func(t *models.Track) string { return t.ExternalURLs.Spotify },
		func(t *models.Track) []list.Item {
			items := []list.Item{trackItem{track: *t}}
			if t.Album.ID != "" {
				items = append(items, albumItem{album: t.Album})
			}
			for _, artist := range t.Artists {
				items = append(items, artistItem{artist: artist})
			}
			return items
		},
	)
	return p
}

func artistPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	id := params.Get("artistId")
	p := newPage(path, "Artist", mt, ch)

	detail := views.NewDetail(mt, id, func(ctx context.Context, req views.Request) (*models.Artist, error) {
		return e.catalog.Artist(ctx, req.Token, req.ID)
	})
	p.header = newHeader(detail,
		formatter.ArtistSummary,
		func(a *models.Artist) string { return a.ExternalURLs.Spotify },
		nil,
	)

	p.listing = views.NewListing(mt, e.browse.PageSize, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.ArtistAlbums(ctx, req.Token, id, req.Limit, req.Offset)
		return pageOf(pg, err, albumItems)
	})
	return p
}

func featuredPage(e *env, path string, mt *views.Mount, ch *preview.Channel, _ router.Params) *page {
	p := newPage(path, "Featured playlists", mt, ch)
	p.listing = views.NewListing(mt, e.browse.PageSize, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.FeaturedPlaylists(ctx, req.Token, req.Limit, req.Offset)
		return pageOf(pg, err, playlistItems)
	})
	return p
}

func playlistPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	id := params.Get("playlistId")
	p := newPage(path, "Playlist", mt, ch)

	detail := views.NewDetail(mt, id, func(ctx context.Context, req views.Request) (*models.Playlist, error) {
		return e.catalog.Playlist(ctx, req.Token, req.ID)
	})
	p.header = newHeader(detail,
		formatter.PlaylistSummary,
		func(pl *models.Playlist) string { return pl.ExternalURLs.Spotify },
		nil,
	)

	p.listing = views.NewListing(mt, e.browse.PlaylistTrackLimit, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.PlaylistTracks(ctx, req.Token, id, req.Limit, req.Offset)
		return pageOf(pg, err, func(items []models.PlaylistItem) []list.Item {
			return trackItems(formatter.FromPlaylist(&models.Playlist{}, items).Tracks)
		})
	})
	return p
}

func podcastsPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	query := params.Get("podcastName")
	if query == "" {
		query = e.browse.PodcastQuery
	}

	p := newPage(path, "Podcasts", mt, ch)
	listing := views.NewListing(mt, e.browse.PageSize, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		pg, err := e.catalog.SearchShows(ctx, req.Token, req.Query, e.browse.Market, req.Limit, req.Offset)
		return pageOf(pg, err, showItems)
	})
	listing.SetQuery(query)

	p.listing = listing
	p.subtitle = func() string { return fmt.Sprintf("%q in %s", listing.Query(), CountryName(e.browse.Market)) }
	return p
}

func podcastPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	p := newPage(path, "Podcast", mt, ch)

	detail := views.NewDetail(mt, params.Get("podcastId"), func(ctx context.Context, req views.Request) (*models.Show, error) {
		return e.catalog.Show(ctx, req.Token, req.ID, e.browse.Market)
	})
	p.header = newHeader(detail,
		formatter.ShowSummary,
		func(s *models.Show) string { return s.ExternalURLs.Spotify },
		func(s *models.Show) []list.Item {
			if s.Episodes == nil {
				return nil
			}
			return episodeItems(s.Episodes.Items)
		},
	)
	return p
}

func searchPage(e *env, path string, mt *views.Mount, ch *preview.Channel, params router.Params) *page {
	query := params.Get("query")
	p := newPage(path, "Search", mt, ch)

	listing := views.NewListing(mt, e.browse.PageSize, func(ctx context.Context, req views.Request) (views.Page[list.Item], error) {
		result, err := e.catalog.Search(ctx, req.Token, services.SearchOptions{
			Query:  req.Query,
			Types:  []string{services.SearchTrack},
			Limit:  req.Limit,
			Offset: req.Offset,
		})
		if err != nil {
			return views.Page[list.Item]{}, err
		}
		if result.Tracks == nil {
			return views.Page[list.Item]{}, nil
		}
		return views.Page[list.Item]{Items: trackItems(result.Tracks.Items), Total: result.Tracks.Total}, nil
	})
	listing.SetQuery(query)

	p.listing = listing
	p.subtitle = func() string { return fmt.Sprintf("%q", listing.Query()) }
	return p
}
