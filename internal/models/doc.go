// Package models defines the catalog entities browsed by spotapp.
//
// Every type is a transient, read-only projection of a Spotify Web API response.
// Nothing here is created, persisted, or written back upstream; values live in a view's
// state for as long as that view is mounted.
//
//   - [Category] : Browsable genre/mood grouping with icon images
//   - [Album] : Release with artists, images and (on detail reads) its track listing
//   - [Track] : Single recording with preview clip and parent album
//   - [Artist] : Performer with followers, popularity and genres
//   - [Playlist] : Ordered collection of tracks
//   - [Show] and [Episode] : Podcasts and their episodes
//
// Collections arrive wrapped in the generic [Paging] envelope, which carries the total
// used by listing views to derive their last page.
package models
