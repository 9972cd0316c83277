package views

import (
	"sync"
)

// Listing holds one paginated collection view: the current page index, the items of that page
// and the total reported upstream.
//
// A fetch is split in three steps so it can be driven from an event loop:
// [Listing.Begin] issues a [Request], [Listing.Fetch] performs it (off the loop), and
// [Listing.Apply] stores the result. Only the result of the latest issued request is applied,
// and nothing is applied once the mount is gone. Pages are never cached: every activation
// issues a new request.
type Listing[T any] struct {
	mount    *Mount
	pageSize int
	fetch    FetchFunc[T]

	mu      sync.Mutex
	query   string
	index   int
	seq     uint64
	items   []T
	total   int
	loading bool
	loaded  bool
	err     error
}

// NewListing creates a listing on mount with a fixed page size.
func NewListing[T any](mount *Mount, pageSize int, fetch FetchFunc[T]) *Listing[T] {
	return &Listing[T]{mount: mount, pageSize: max(1, pageSize), fetch: fetch}
}

// Begin issues a request for the current page. It returns false, issuing nothing, while the
// mount has no token or after it has been unmounted.
func (l *Listing[T]) Begin() (Request, bool) {
	token, ok := l.mount.Token()
	if !ok || !l.mount.Active() {
		return Request{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.loading = true
	l.loaded = false
	l.items = nil

	return Request{
		MountID: l.mount.ID,
		Seq:     l.seq,
		Token:   token,
		Query:   l.query,
		Index:   l.index,
		Limit:   l.pageSize,
		Offset:  l.index * l.pageSize,
	}, true
}

// Fetch performs req under the mount's context. Failures are logged and carried in the result.
func (l *Listing[T]) Fetch(req Request) Result[Page[T]] {
	page, err := l.fetch(l.mount.Context(), req)
	if err != nil && l.mount.Active() {
		l.mount.Logger().Error("listing fetch failed", "offset", req.Offset, "seq", req.Seq, "error", err)
	}
	return Result[Page[T]]{Request: req, Value: page, Err: err}
}

// Apply stores res if it answers the latest issued request of a live mount, reporting whether it did.
func (l *Listing[T]) Apply(res Result[Page[T]]) bool {
	if !l.mount.Active() || res.MountID != l.mount.ID {
		l.mount.Logger().Debug("dropping result for unmounted view", "seq", res.Seq)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if res.Seq != l.seq {
		l.mount.Logger().Debug("dropping stale result", "seq", res.Seq, "latest", l.seq)
		return false
	}

	l.loading = false
	if res.Err != nil {
		l.err = res.Err
		return true
	}

	l.err = nil
	l.loaded = true
	l.items = res.Value.Items
	l.total = res.Value.Total
	return true
}

// Load runs Begin, Fetch and Apply in sequence. It returns [Listing.Err] after the fetch, or
// nil without fetching when there is no token.
func (l *Listing[T]) Load() error {
	req, ok := l.Begin()
	if !ok {
		return nil
	}
	l.Apply(l.Fetch(req))
	return l.Err()
}

// LastPage returns ceil(total / pageSize) - 1.
func (l *Listing[T]) LastPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastPage()
}

func (l *Listing[T]) lastPage() int {
	return (l.total+l.pageSize-1)/l.pageSize - 1
}

// Next advances one page. It is a no-op at or beyond the last page and reports whether the index changed.
func (l *Listing[T]) Next() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index >= l.lastPage() {
		return false
	}
	l.index++
	return true
}

// Previous goes back one page. It is a no-op at index 0 and reports whether the index changed.
func (l *Listing[T]) Previous() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index <= 0 {
		return false
	}
	l.index--
	return true
}

// GoTo jumps to a page index before the total is known. Negative indices are rejected.
func (l *Listing[T]) GoTo(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index == l.index {
		return false
	}
	l.index = index
	return true
}

// SetQuery changes the listing's query and returns to the first page when it differs.
func (l *Listing[T]) SetQuery(query string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if query == l.query {
		return false
	}
	l.query = query
	l.index = 0
	l.total = 0
	return true
}

// Reset returns to the first page.
func (l *Listing[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.index = 0
}

func (l *Listing[T]) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *Listing[T]) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

func (l *Listing[T]) PageSize() int { return l.pageSize }

// Items returns a copy of the current page.
func (l *Listing[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *Listing[T]) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Loading reports whether the current page has not been applied yet.
func (l *Listing[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loaded
}

// Pending reports whether a request is in flight. A failed fetch is loading but not pending.
func (l *Listing[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the error of the last applied fetch.
func (l *Listing[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Listing[T]) Mount() *Mount { return l.mount }
