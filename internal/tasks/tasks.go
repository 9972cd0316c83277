package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/router"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
)

// Source kinds that can be exported as track lists.
const (
	KindAlbum    = "album"
	KindPlaylist = "playlist"
)

// playlistPageSize is the largest page the playlist tracks endpoint serves.
const playlistPageSize = 50

// linkKinds maps route segments to source kinds.
var linkKinds = map[string]string{"albums": KindAlbum, "playlist": KindPlaylist}

// Source names one exportable resource.
type Source struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (s Source) String() string { return s.Kind + ":" + s.ID }

// ParseSource accepts "album:<id>", "playlist:<id>", spotify: URIs and open.spotify.com links.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)

	if router.IsSpotifyURL(raw) {
		path, err := router.FromSpotifyURL(raw)
		if err != nil {
			return Source{}, err
		}
		segment, id, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
		kind, ok := linkKinds[segment]
		if !ok {
			return Source{}, fmt.Errorf("%w: cannot export %s links", shared.ErrInvalidArgument, segment)
		}
		return Source{Kind: kind, ID: id}, nil
	}

	kind, id, ok := strings.Cut(raw, ":")
	if !ok || strings.TrimSpace(id) == "" {
		return Source{}, fmt.Errorf("%w: expected album:<id> or playlist:<id>, got %q", shared.ErrInvalidArgument, raw)
	}
	switch kind {
	case KindAlbum, KindPlaylist:
		return Source{Kind: kind, ID: strings.TrimSpace(id)}, nil
	default:
		return Source{}, fmt.Errorf("%w: cannot export %q", shared.ErrInvalidArgument, kind)
	}
}

// Exporter writes albums and playlists to disk as track lists.
type Exporter struct {
	catalog services.Catalog
	tokens  auth.TokenSource
	logger  *log.Logger
}

// NewExporter creates an Exporter with the provided catalog and credentials.
func NewExporter(catalog services.Catalog, tokens auth.TokenSource, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{catalog: catalog, tokens: tokens, logger: logger}
}

func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// fetch loads the track list of src. Playlists are read page by page up to maxTracks (0 reads all).
func (e *Exporter) fetch(ctx context.Context, token string, src Source, maxTracks int) (*formatter.TrackList, error) {
	switch src.Kind {
	case KindAlbum:
		album, err := e.catalog.Album(ctx, token, src.ID)
		if err != nil {
			return nil, err
		}
		return formatter.FromAlbum(album), nil

	case KindPlaylist:
		playlist, err := e.catalog.Playlist(ctx, token, src.ID)
		if err != nil {
			return nil, err
		}

		var items []models.PlaylistItem
		for offset := 0; ; offset += playlistPageSize {
			limit := playlistPageSize
			if maxTracks > 0 {
				limit = min(limit, maxTracks-len(items))
			}
			page, err := e.catalog.PlaylistTracks(ctx, token, src.ID, limit, offset)
			if err != nil {
				return nil, err
			}
			items = append(items, page.Items...)

			done := len(page.Items) == 0 || offset+len(page.Items) >= page.Total
			if done || (maxTracks > 0 && len(items) >= maxTracks) {
				break
			}
		}
		if maxTracks > 0 && len(items) > maxTracks {
			items = items[:maxTracks]
		}
		return formatter.FromPlaylist(playlist, items), nil

	default:
		return nil, fmt.Errorf("%w: cannot export %q", shared.ErrInvalidArgument, src.Kind)
	}
}
