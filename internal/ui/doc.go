// Package ui implements the interactive catalog browser using bubbletea's Elm architecture.
//
// Every screen is a page mounted for one path of the route table in package router:
//   - "/" : Browse categories
//   - "/categories/:id" : A category and its playlists
//   - "/albums" : New releases, cycling through countries with "c"
//   - "/albums/:albumId", "/track/:trackId", "/artist/:artistId" : Detail views
//   - "/playlist", "/playlist/:playlistId" : Featured playlists and a playlist's tracks
//   - "/podcast", "/podcasts/:podcastName", "/podcast/:podcastId" : Show search and episodes
//   - "/search/:query" : Track search
//
// Navigating unmounts the live page, which cancels its requests and stops its preview, and
// mounts a fresh one with its own token. Results are delivered as [Msg] values tagged with the
// mount that produced them; the [Model] drops any whose mount is no longer live.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, n/p, space, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
