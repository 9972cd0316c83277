// Package services defines the [Catalog] interface over the music catalog API and implements it for Spotify.
//
// # Catalog Interface
//
// Every method is a GET against the resource API and takes the bearer token owned by the
// calling view's mount. The service itself holds no credentials and no state besides its
// request pacer, so one instance is shared by every view.
//
// # Spotify Implementation
//
// [SpotifyService] issues requests with an Authorization: Bearer header, decodes responses
// into [models] projections and unwraps the collection envelopes the browse and search
// endpoints return ({"albums": {...}}, {"playlists": {...}}, ...).
//
// Requests are paced client side with a [rate.Limiter]. There is no retry and no backoff:
// a failed request fails the view that issued it.
//
// # Error Handling
//
// Non-2xx responses are mapped to sentinel errors from the shared package, each wrapping
// the decoded [APIError]:
//   - [shared.ErrTokenExpired] : 401, the mount's token is no longer valid
//   - [shared.ErrNotFound] : 404, unknown identifier
//   - [shared.ErrRateLimited] : 429, upstream rate limit hit
//   - [shared.ErrAPIRequest] : any other failure
//
// Empty identifiers are rejected before any request with [shared.ErrMissingArgument].
package services
