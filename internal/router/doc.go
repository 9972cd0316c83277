// Package router maps navigation paths onto views for the terminal UI and the tui command.
//
// # Route Table
//
// Paths follow the layout of the web player:
//
//	/                        categories
//	/categories/:id          category playlists
//	/albums                  new releases
//	/albums/:albumId         album detail
//	/track/:trackId          track detail
//	/artist/:artistId        artist detail
//	/playlist                featured playlists
//	/playlist/:playlistId    playlist detail
//	/podcast                 podcast search (default query)
//	/podcasts/:podcastName   podcast search
//	/podcast/:podcastId      podcast detail
//	/search/:query           track search
//
// # Middleware
//
// [Middleware] wraps resolution in reverse order (last added executes first), mirroring
// the usual http.Handler pattern. The UI uses it to log navigation.
package router
