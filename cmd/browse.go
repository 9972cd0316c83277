package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/views"
	"github.com/urfave/cli/v3"
)

// listingOutput is the JSON shape of one listing page.
type listingOutput[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// loadListing fetches page (1-based) of a listing with query on mt.
func loadListing[T any](mt *views.Mount, size, page int, query string, fetch views.FetchFunc[T]) (*views.Listing[T], error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be 1 or greater, got %d", shared.ErrInvalidFlag, page)
	}

	l := views.NewListing(mt, size, fetch)
	l.SetQuery(query)
	l.GoTo(page - 1)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// loadDetail fetches the resource id on mt.
func loadDetail[T any](mt *views.Mount, id string, fetch views.DetailFunc[T]) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	d := views.NewDetail(mt, id, fetch)
	if err := d.Load(); err != nil {
		if services.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, id)
		}
		return nil, err
	}
	v, ok := d.Value()
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}
	return v, nil
}

func (r *Runner) writeListing(cmd *cli.Command, title string, l any, lines []string, index, lastPage, total int) error {
	if cmd.Bool("json") {
		return r.writeJSON(l, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	if len(lines) == 0 {
		r.writePlain("Nothing here.\n")
	}
	for _, line := range lines {
		r.writePlain("%s\n", line)
	}
	return r.writePlain("\n%s\n", formatter.PageFooter(index, lastPage, total))
}

func pageOutput[T any](l *views.Listing[T]) listingOutput[T] {
	return listingOutput[T]{Items: l.Items(), Total: l.Total(), Page: l.Index() + 1, Pages: l.LastPage() + 1}
}

// Categories lists browse categories.
func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "categories")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	l, err := loadListing(mt, r.config.Browse.CategoryLimit, cmd.Int("page"), "", func(ctx context.Context, req views.Request) (views.Page[models.Category], error) {
		pg, err := catalog.Categories(ctx, req.Token, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	var lines []string
	for _, c := range l.Items() {
		lines = append(lines, fmt.Sprintf("%-24s %s", c.ID, c.Name))
	}
	return r.writeListing(cmd, "Browse categories", pageOutput(l), lines, l.Index(), l.LastPage(), l.Total())
}

// Category shows a category and a page of its playlists.
func (r *Runner) Category(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	mt, err := r.mount(ctx, "category")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	category, err := loadDetail(mt, id, func(ctx context.Context, req views.Request) (*models.Category, error) {
		return catalog.Category(ctx, req.Token, req.ID)
	})
	if err != nil {
		return err
	}

	l, err := loadListing(mt, r.config.Browse.CategoryPlaylistLimit, cmd.Int("page"), "", func(ctx context.Context, req views.Request) (views.Page[models.Playlist], error) {
		pg, err := catalog.CategoryPlaylists(ctx, req.Token, category.ID, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Category  *models.Category               `json:"category"`
			Playlists listingOutput[models.Playlist] `json:"playlists"`
		}{category, pageOutput(l)}, cmd.Bool("pretty"))
	}

	return r.writeListing(cmd, category.Name, nil, playlistLines(l.Items()), l.Index(), l.LastPage(), l.Total())
}

// Albums lists new releases for a country.
func (r *Runner) Albums(ctx context.Context, cmd *cli.Command) error {
	country := strings.ToUpper(cmd.String("country"))
	if country == "" {
		country = r.config.Browse.Country
	}
	if len(country) != 2 {
		return fmt.Errorf("%w: country must be a two-letter code, got %q", shared.ErrInvalidFlag, country)
	}

	mt, err := r.mount(ctx, "albums")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	l, err := loadListing(mt, r.config.Browse.PageSize, cmd.Int("page"), country, func(ctx context.Context, req views.Request) (views.Page[models.Album], error) {
		pg, err := catalog.NewReleases(ctx, req.Token, req.Query, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	return r.writeListing(cmd, "New releases · "+country, pageOutput(l), albumLines(l.Items()), l.Index(), l.LastPage(), l.Total())
}

// Album shows an album with its tracks. --format exports the track list.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "album")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	album, err := loadDetail(mt, cmd.StringArg("id"), func(ctx context.Context, req views.Request) (*models.Album, error) {
		return catalog.Album(ctx, req.Token, req.ID)
	})
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(album, cmd.Bool("pretty"))
	case cmd.String("format") != "":
		return r.export(formatter.FromAlbum(album), cmd.String("format"))
	}

	r.writePlain("%s\n", formatter.AlbumSummary(album))
	if album.Tracks != nil {
		for _, t := range album.Tracks.Items {
			r.writePlain("%s\n", formatter.TrackLine(t))
		}
	}
	return nil
}

// Track shows a track.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "track")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	track, err := loadDetail(mt, cmd.StringArg("id"), func(ctx context.Context, req views.Request) (*models.Track, error) {
		return catalog.Track(ctx, req.Token, req.ID)
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.TrackSummary(track))
}

// Artist shows an artist and a page of their albums.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "artist")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	artist, err := loadDetail(mt, cmd.StringArg("id"), func(ctx context.Context, req views.Request) (*models.Artist, error) {
		return catalog.Artist(ctx, req.Token, req.ID)
	})
	if err != nil {
		return err
	}

	l, err := loadListing(mt, r.config.Browse.PageSize, cmd.Int("page"), "", func(ctx context.Context, req views.Request) (views.Page[models.Album], error) {
		pg, err := catalog.ArtistAlbums(ctx, req.Token, artist.ID, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Artist *models.Artist              `json:"artist"`
			Albums listingOutput[models.Album] `json:"albums"`
		}{artist, pageOutput(l)}, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", formatter.ArtistSummary(artist))
	return r.writeListing(cmd, "Albums", nil, albumLines(l.Items()), l.Index(), l.LastPage(), l.Total())
}

// Playlists lists featured playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "playlists")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	l, err := loadListing(mt, r.config.Browse.PageSize, cmd.Int("page"), "", func(ctx context.Context, req views.Request) (views.Page[models.Playlist], error) {
		pg, err := catalog.FeaturedPlaylists(ctx, req.Token, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	return r.writeListing(cmd, "Featured playlists", pageOutput(l), playlistLines(l.Items()), l.Index(), l.LastPage(), l.Total())
}

// Playlist shows a playlist with a page of its tracks. --format exports the track list.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "playlist")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog := r.service()
	playlist, err := loadDetail(mt, cmd.StringArg("id"), func(ctx context.Context, req views.Request) (*models.Playlist, error) {
		return catalog.Playlist(ctx, req.Token, req.ID)
	})
	if err != nil {
		return err
	}

	l, err := loadListing(mt, r.config.Browse.PlaylistTrackLimit, cmd.Int("page"), "", func(ctx context.Context, req views.Request) (views.Page[models.PlaylistItem], error) {
		pg, err := catalog.PlaylistTracks(ctx, req.Token, playlist.ID, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	list := formatter.FromPlaylist(playlist, l.Items())
	switch {
	case cmd.Bool("json"):
		return r.writeJSON(struct {
			Playlist *models.Playlist                   `json:"playlist"`
			Tracks   listingOutput[models.PlaylistItem] `json:"tracks"`
		}{playlist, pageOutput(l)}, cmd.Bool("pretty"))
	case cmd.String("format") != "":
		return r.export(list, cmd.String("format"))
	}

	r.writePlain("%s\n", formatter.PlaylistSummary(playlist))
	var lines []string
	for i, t := range list.Tracks {
		lines = append(lines, fmt.Sprintf("%3d. %s", l.Index()*l.PageSize()+i+1, formatter.TrackLine(t.SimpleTrack)))
	}
	return r.writeListing(cmd, "Tracks", nil, lines, l.Index(), l.LastPage(), l.Total())
}

// Podcasts searches shows in the configured market.
func (r *Runner) Podcasts(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		query = r.config.Browse.PodcastQuery
	}

	mt, err := r.mount(ctx, "podcasts")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog, market := r.service(), r.config.Browse.Market
	l, err := loadListing(mt, r.config.Browse.PageSize, cmd.Int("page"), query, func(ctx context.Context, req views.Request) (views.Page[models.Show], error) {
		pg, err := catalog.SearchShows(ctx, req.Token, req.Query, market, req.Limit, req.Offset)
		return pageOf(pg, err)
	})
	if err != nil {
		return err
	}

	var lines []string
	for _, s := range l.Items() {
		if s.ID == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-24s %s (%s)", s.ID, s.Name, s.Publisher))
	}
	return r.writeListing(cmd, fmt.Sprintf("Podcasts · %q", query), pageOutput(l), lines, l.Index(), l.LastPage(), l.Total())
}

// Podcast shows a podcast and its episodes.
func (r *Runner) Podcast(ctx context.Context, cmd *cli.Command) error {
	mt, err := r.mount(ctx, "podcast")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	catalog, market := r.service(), r.config.Browse.Market
	show, err := loadDetail(mt, cmd.StringArg("id"), func(ctx context.Context, req views.Request) (*models.Show, error) {
		return catalog.Show(ctx, req.Token, req.ID, market)
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(show, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", formatter.ShowSummary(show))
	if show.Episodes != nil {
		for _, e := range show.Episodes.Items {
			r.writePlain("%s\n", formatter.EpisodeLine(e))
		}
	}
	return nil
}

// Search queries the catalog for the requested result types.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	types := cmd.StringSlice("type")
	for _, t := range types {
		if !slices.Contains(services.SearchTypes, t) {
			return fmt.Errorf("%w: unknown search type %q", shared.ErrInvalidFlag, t)
		}
	}

	page := cmd.Int("page")
	if page < 1 {
		return fmt.Errorf("%w: page must be 1 or greater, got %d", shared.ErrInvalidFlag, page)
	}

	mt, err := r.mount(ctx, "search")
	if err != nil {
		return err
	}
	defer mt.Unmount()

	token, _ := mt.Token()
	size := r.config.Browse.PageSize
	result, err := r.service().Search(mt.Context(), token, services.SearchOptions{
		Query:  query,
		Types:  types,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if result.Tracks != nil {
		if f := cmd.String("format"); f != "" {
			return r.export(&formatter.TrackList{Title: fmt.Sprintf("Search: %s", query), Tracks: result.Tracks.Items}, f)
		}
		var lines []string
		for _, t := range result.Tracks.Items {
			lines = append(lines, formatter.TrackLine(t.SimpleTrack))
		}
		r.writeSection("Tracks", lines, result.Tracks.Total)
	}
	if result.Artists != nil {
		var lines []string
		for _, a := range result.Artists.Items {
			lines = append(lines, fmt.Sprintf("%-24s %s (%s)", a.ID, a.Name, formatter.Followers(a.Followers.Total)))
		}
		r.writeSection("Artists", lines, result.Artists.Total)
	}
	if result.Albums != nil {
		r.writeSection("Albums", albumLines(result.Albums.Items), result.Albums.Total)
	}
	if result.Playlists != nil {
		r.writeSection("Playlists", playlistLines(result.Playlists.Items), result.Playlists.Total)
	}
	if result.Shows != nil {
		var lines []string
		for _, s := range result.Shows.Items {
			if s.ID != "" {
				lines = append(lines, fmt.Sprintf("%-24s %s (%s)", s.ID, s.Name, s.Publisher))
			}
		}
		r.writeSection("Podcasts", lines, result.Shows.Total)
	}
	return nil
}

func (r *Runner) writeSection(title string, lines []string, total int) {
	r.writePlain("%s (%s results)\n", title, formatter.Count(total))
	for _, line := range lines {
		r.writePlain("  %s\n", line)
	}
	r.writePlain("\n")
}

func (r *Runner) export(list *formatter.TrackList, format string) error {
	data, err := formatter.Export(list, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Token performs one client-credentials exchange.
func (r *Runner) Token(ctx context.Context, cmd *cli.Command) error {
	tokens, err := r.tokenSource()
	if err != nil {
		return err
	}

	token, err := tokens.Token(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("show") {
		return r.writePlain("%s\n", token)
	}
	return r.writePlain("✓ Access token acquired (%d characters)\n", len(token))
}

func pageOf[T any](pg *models.Paging[T], err error) (views.Page[T], error) {
	if err != nil {
		return views.Page[T]{}, err
	}
	return views.Page[T]{Items: pg.Items, Total: pg.Total}, nil
}

func albumLines(albums []models.Album) []string {
	lines := make([]string, 0, len(albums))
	for _, a := range albums {
		lines = append(lines, fmt.Sprintf("%-24s %s - %s (%s)", a.ID, a.Name, models.ArtistNames(a.Artists), a.ReleaseDate))
	}
	return lines
}

func playlistLines(playlists []models.Playlist) []string {
	lines := make([]string, 0, len(playlists))
	for _, p := range playlists {
		if p.ID == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-24s %s (%d tracks)", p.ID, p.Name, p.Tracks.Total))
	}
	return lines
}
