// Package views holds the per-view state objects shared by the terminal UI and the CLI.
//
// # Mount
//
// A [Mount] is one view's lifetime. It resolves the view's bearer token once through an
// [auth.TokenSource], derives a cancellable context for every request the view issues and
// tags log entries with the view name and a short mount id. [Mount.Unmount] cancels in-flight
// requests; results that arrive afterwards are dropped.
//
// # Listing
//
// [Listing] is a paginated collection. The request offset is always index × pageSize and the
// last page is ceil(total / pageSize) − 1. Next and Previous are no-ops at the bounds.
// Each [Listing.Begin] increments a sequence number; [Listing.Apply] ignores any result whose
// sequence is not the latest, so rapid paging never shows an older page.
//
// Without a token nothing is requested. Nothing is cached either: returning to a page issues
// a new request.
//
// # Detail
//
// [Detail] is a single resource. It issues exactly one request once both the identifier and the
// token are present. Failures are logged and leave the view loading; [Detail.Err] exists for
// callers that must report them, such as the CLI.
package views
