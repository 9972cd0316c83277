package views

import "context"

// Request describes one fetch issued by a view.
type Request struct {
	MountID string
	Seq     uint64
	Token   string

	// ID is set for detail fetches.
	ID string

	// Query, Index, Limit and Offset are set for listing fetches.
	Query  string
	Index  int
	Limit  int
	Offset int
}

// Result carries the outcome of a [Request] back to the view that issued it.
type Result[V any] struct {
	Request
	Value V
	Err   error
}

// Page is one slice of a paginated collection together with the collection's total size.
type Page[T any] struct {
	Items []T
	Total int
}

// FetchFunc loads one page of a listing.
type FetchFunc[T any] func(ctx context.Context, req Request) (Page[T], error)

// DetailFunc loads a single resource.
type DetailFunc[T any] func(ctx context.Context, req Request) (*T, error)
