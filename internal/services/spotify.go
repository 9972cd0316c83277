// Spotify Web API implementation of [Catalog]
//
// Response types are defined in the models package, based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/models"
	"github.com/desertthunder/spotapp/internal/shared"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	defaultLimit = 20
	maxLimit     = 50
)

// SpotifyOptions configures a [SpotifyService]. Zero values fall back to the public API,
// [http.DefaultClient], unpaced requests and a stderr logger.
type SpotifyOptions struct {
	BaseURL           string
	HTTPClient        *http.Client
	RequestsPerSecond float64
	Logger            *log.Logger
}

// SpotifyService implements [Catalog] against the Spotify Web API.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyService creates a catalog client with the given options.
func NewSpotifyService(opts SpotifyOptions) *SpotifyService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		burst := max(1, int(opts.RequestsPerSecond))
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyService{baseURL: baseURL, httpClient: httpClient, limiter: limiter, logger: logger}
}

// clampLimit keeps page sizes inside the 1..50 range the API accepts.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

func pageParams(limit, offset int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("offset", strconv.Itoa(max(0, offset)))
	return params
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id", shared.ErrMissingArgument, kind)
	}
	return nil
}

// doRequest performs an authenticated GET against the Spotify API and decodes the body into result.
func (s *SpotifyService) doRequest(ctx context.Context, token, endpoint string, params url.Values, result any) error {
	if token == "" {
		return fmt.Errorf("%w: no access token", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request pacing interrupted: %w", err)
	}

	apiURL := s.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	s.logger.Debug("spotify response", "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// statusError maps a non-2xx response onto a sentinel wrapping the decoded [APIError].
func statusError(status int, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.ErrorInfo.Message == "" {
		apiErr.ErrorInfo.Status = status
		apiErr.ErrorInfo.Message = http.StatusText(status)
	}

	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = shared.ErrTokenExpired
	case http.StatusNotFound:
		sentinel = shared.ErrNotFound
	case http.StatusTooManyRequests:
		sentinel = shared.ErrRateLimited
	default:
		sentinel = shared.ErrAPIRequest
	}
	return fmt.Errorf("%w: %w", sentinel, apiErr)
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

// Categories lists browse categories.
func (s *SpotifyService) Categories(ctx context.Context, token string, limit, offset int) (*models.Paging[models.Category], error) {
	var response struct {
		Categories models.Paging[models.Category] `json:"categories"`
	}
	if err := s.doRequest(ctx, token, "/browse/categories", pageParams(limit, offset), &response); err != nil {
		return nil, err
	}
	return &response.Categories, nil
}

// Category retrieves a single browse category by ID.
func (s *SpotifyService) Category(ctx context.Context, token, categoryID string) (*models.Category, error) {
	if err := requireID("category", categoryID); err != nil {
		return nil, err
	}

	var category models.Category
	endpoint := fmt.Sprintf("/browse/categories/%s", url.PathEscape(categoryID))
	if err := s.doRequest(ctx, token, endpoint, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryPlaylists lists the playlists of a category.
func (s *SpotifyService) CategoryPlaylists(ctx context.Context, token, categoryID string, limit, offset int) (*models.Paging[models.Playlist], error) {
	if err := requireID("category", categoryID); err != nil {
		return nil, err
	}

	var response struct {
		Playlists models.Paging[models.Playlist] `json:"playlists"`
	}
	endpoint := fmt.Sprintf("/browse/categories/%s/playlists", url.PathEscape(categoryID))
	if err := s.doRequest(ctx, token, endpoint, pageParams(limit, offset), &response); err != nil {
		return nil, err
	}
	return &response.Playlists, nil
}

// NewReleases lists new album releases. An empty country leaves the choice to the API.
func (s *SpotifyService) NewReleases(ctx context.Context, token, country string, limit, offset int) (*models.Paging[models.Album], error) {
	params := pageParams(limit, offset)
	if country != "" {
		params.Set("country", country)
	}

	var response struct {
		Albums models.Paging[models.Album] `json:"albums"`
	}
	if err := s.doRequest(ctx, token, "/browse/new-releases", params, &response); err != nil {
		return nil, err
	}
	return &response.Albums, nil
}

// FeaturedPlaylists lists featured playlists.
func (s *SpotifyService) FeaturedPlaylists(ctx context.Context, token string, limit, offset int) (*models.Paging[models.Playlist], error) {
	var response struct {
		Message   string                         `json:"message"`
		Playlists models.Paging[models.Playlist] `json:"playlists"`
	}
	if err := s.doRequest(ctx, token, "/browse/featured-playlists", pageParams(limit, offset), &response); err != nil {
		return nil, err
	}
	return &response.Playlists, nil
}

// Album retrieves an album with its first page of tracks.
func (s *SpotifyService) Album(ctx context.Context, token, albumID string) (*models.Album, error) {
	if err := requireID("album", albumID); err != nil {
		return nil, err
	}

	var album models.Album
	endpoint := fmt.Sprintf("/albums/%s", url.PathEscape(albumID))
	if err := s.doRequest(ctx, token, endpoint, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, token, trackID string) (*models.Track, error) {
	if err := requireID("track", trackID); err != nil {
		return nil, err
	}

	var track models.Track
	endpoint := fmt.Sprintf("/tracks/%s", url.PathEscape(trackID))
	if err := s.doRequest(ctx, token, endpoint, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Artist retrieves an artist by ID.
func (s *SpotifyService) Artist(ctx context.Context, token, artistID string) (*models.Artist, error) {
	if err := requireID("artist", artistID); err != nil {
		return nil, err
	}

	var artist models.Artist
	endpoint := fmt.Sprintf("/artists/%s", url.PathEscape(artistID))
	if err := s.doRequest(ctx, token, endpoint, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistAlbums lists an artist's albums.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, token, artistID string, limit, offset int) (*models.Paging[models.Album], error) {
	if err := requireID("artist", artistID); err != nil {
		return nil, err
	}

	var response models.Paging[models.Album]
	endpoint := fmt.Sprintf("/artists/%s/albums", url.PathEscape(artistID))
	if err := s.doRequest(ctx, token, endpoint, pageParams(limit, offset), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Playlist retrieves a playlist by ID.
func (s *SpotifyService) Playlist(ctx context.Context, token, playlistID string) (*models.Playlist, error) {
	if err := requireID("playlist", playlistID); err != nil {
		return nil, err
	}

	var playlist models.Playlist
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, token, endpoint, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// PlaylistTracks lists a page of playlist items.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, token, playlistID string, limit, offset int) (*models.Paging[models.PlaylistItem], error) {
	if err := requireID("playlist", playlistID); err != nil {
		return nil, err
	}

	var response models.Paging[models.PlaylistItem]
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, token, endpoint, pageParams(limit, offset), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchShows searches podcasts.
func (s *SpotifyService) SearchShows(ctx context.Context, token, query, market string, limit, offset int) (*models.Paging[models.Show], error) {
	result, err := s.Search(ctx, token, SearchOptions{
		Query:  query,
		Types:  []string{SearchShow},
		Market: market,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	if result.Shows == nil {
		return &models.Paging[models.Show]{}, nil
	}
	return result.Shows, nil
}

// Show retrieves a podcast. Shows are market-restricted, so an empty market may yield 404.
func (s *SpotifyService) Show(ctx context.Context, token, showID, market string) (*models.Show, error) {
	if err := requireID("show", showID); err != nil {
		return nil, err
	}

	var params url.Values
	if market != "" {
		params = url.Values{"market": {market}}
	}

	var show models.Show
	endpoint := fmt.Sprintf("/shows/%s", url.PathEscape(showID))
	if err := s.doRequest(ctx, token, endpoint, params, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// Search runs a catalog search.
func (s *SpotifyService) Search(ctx context.Context, token string, opts SearchOptions) (*models.SearchResult, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	types := opts.Types
	if len(types) == 0 {
		types = []string{SearchTrack}
	}
	for _, t := range types {
		if !slices.Contains(SearchTypes, t) {
			return nil, fmt.Errorf("%w: unknown search type %q", shared.ErrInvalidArgument, t)
		}
	}

	params := pageParams(opts.Limit, opts.Offset)
	params.Set("q", query)
	params.Set("type", strings.Join(types, ","))
	if opts.Market != "" {
		params.Set("market", opts.Market)
	}

	var result models.SearchResult
	if err := s.doRequest(ctx, token, "/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
