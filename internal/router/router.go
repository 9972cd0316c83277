// package router maps navigation paths onto views
package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotapp/internal/shared"
)

// Route patterns. Segments prefixed with ":" capture a parameter.
const (
	Home          = "/"
	Category      = "/categories/:id"
	Albums        = "/albums"
	Album         = "/albums/:albumId"
	Track         = "/track/:trackId"
	Artist        = "/artist/:artistId"
	Playlists     = "/playlist"
	Playlist      = "/playlist/:playlistId"
	Podcasts      = "/podcast"
	PodcastSearch = "/podcasts/:podcastName"
	Podcast       = "/podcast/:podcastId"
	Search        = "/search/:query"
)

// Patterns lists every route pattern in display order.
var Patterns = []string{
	Home, Category, Albums, Album, Track, Artist,
	Playlists, Playlist, Podcasts, PodcastSearch, Podcast, Search,
}

// Params holds the values captured by ":name" segments.
type Params map[string]string

// Get returns the named parameter, or "".
func (p Params) Get(name string) string {
	return p[name]
}

// Match is the result of resolving a path.
type Match[T any] struct {
	Path    string
	Pattern string
	Target  T
	Params  Params
}

// ResolveFunc resolves a path to a [Match].
type ResolveFunc[T any] func(path string) (Match[T], error)

// Middleware wraps a [ResolveFunc] with additional behavior (logging, redirects).
type Middleware[T any] func(ResolveFunc[T]) ResolveFunc[T]

type route[T any] struct {
	pattern  string
	segments []string
	static   int
	target   T
}

// Router resolves paths against registered patterns.
//
// When several patterns match, the one with the most literal segments wins, so "/podcast"
// never shadows "/podcast/:podcastId".
type Router[T any] struct {
	routes      []route[T]
	middlewares []Middleware[T]
}

// New creates an empty [Router].
func New[T any]() *Router[T] {
	return &Router[T]{}
}

// Handle registers target under pattern. Registering the same pattern twice replaces the target.
func (r *Router[T]) Handle(pattern string, target T) {
	segments := split(pattern)
	static := 0
	for _, s := range segments {
		if !strings.HasPrefix(s, ":") {
			static++
		}
	}

	for i, existing := range r.routes {
		if existing.pattern == pattern {
			r.routes[i].target = target
			return
		}
	}

	r.routes = append(r.routes, route[T]{pattern: pattern, segments: segments, static: static, target: target})
}

// Use adds [Middleware] to the resolution chain, applied in the order it's added.
func (r *Router[T]) Use(middleware ...Middleware[T]) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Resolve finds the route for path. Query strings and trailing slashes are ignored.
func (r *Router[T]) Resolve(path string) (Match[T], error) {
	return r.Apply(r.match)(path)
}

// Apply wraps a resolver with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *Router[T]) Apply(next ResolveFunc[T]) ResolveFunc[T] {
	wrapped := next
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}

func (r *Router[T]) match(path string) (Match[T], error) {
	clean := Clean(path)
	segments := split(clean)

	var (
		best   *route[T]
		params Params
	)

	for i := range r.routes {
		rt := &r.routes[i]
		p, ok := rt.bind(segments)
		if !ok {
			continue
		}
		if best == nil || rt.static > best.static {
			best, params = rt, p
		}
	}

	if best == nil {
		return Match[T]{}, fmt.Errorf("%w: %s", shared.ErrRouteNotFound, clean)
	}

	return Match[T]{Path: clean, Pattern: best.pattern, Target: best.target, Params: params}, nil
}

func (rt *route[T]) bind(segments []string) (Params, bool) {
	if len(segments) != len(rt.segments) {
		return nil, false
	}

	params := Params{}
	for i, s := range rt.segments {
		if name, ok := strings.CutPrefix(s, ":"); ok {
			value, err := url.PathUnescape(segments[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[name] = value
			continue
		}
		if s != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// Clean normalizes a path: leading slash, no trailing slash, no query or fragment.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	return path
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Build fills the ":name" segments of pattern with values, in order.
func Build(pattern string, values ...string) string {
	segments := split(pattern)
	next := 0
	for i, s := range segments {
		if strings.HasPrefix(s, ":") && next < len(values) {
			segments[i] = url.PathEscape(values[next])
			next++
		}
	}
	return "/" + strings.Join(segments, "/")
}
