package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotapp/internal/shared"
)

var kindPatterns = map[string]string{
	"album":    Album,
	"track":    Track,
	"artist":   Artist,
	"playlist": Playlist,
	"show":     Podcast,
	"genre":    Category,
}

// FromSpotifyURL converts an open.spotify.com link or a spotify: URI into a navigation path.
//
//	https://open.spotify.com/album/4m2880jivSbbyEGAKfITCa -> /albums/4m2880jivSbbyEGAKfITCa
//	spotify:artist:4tZwfgrHOc3mvqYlEYSvVi                  -> /artist/4tZwfgrHOc3mvqYlEYSvVi
func FromSpotifyURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	var kind, id string
	if rest, ok := strings.CutPrefix(raw, "spotify:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: malformed spotify URI %q", shared.ErrInvalidArgument, raw)
		}
		kind, id = parts[0], parts[1]
	} else {
		u, err := url.Parse(raw)
		if err != nil || u.Host != "open.spotify.com" {
			return "", fmt.Errorf("%w: not an open.spotify.com link: %q", shared.ErrInvalidArgument, raw)
		}

		segments := split(u.Path)
		if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
			segments = segments[1:]
		}
		if len(segments) != 2 {
			return "", fmt.Errorf("%w: unexpected link path %q", shared.ErrInvalidArgument, u.Path)
		}
		kind, id = segments[0], segments[1]
	}

	pattern, ok := kindPatterns[kind]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %s links", shared.ErrRouteNotFound, kind)
	}
	return Build(pattern, id), nil
}

// IsSpotifyURL reports whether s looks like a link [FromSpotifyURL] understands.
func IsSpotifyURL(s string) bool {
	return strings.HasPrefix(s, "spotify:") || strings.Contains(s, "open.spotify.com/")
}
