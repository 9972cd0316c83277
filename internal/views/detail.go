package views

import (
	"strings"
	"sync"
)

// Detail holds a single resource view. It waits for both an identifier and a token, then
// issues exactly one request. A failed fetch, including upstream not-found, is logged and the
// view stays loading.
type Detail[T any] struct {
	mount *Mount
	id    string
	fetch DetailFunc[T]

	mu     sync.Mutex
	seq    uint64
	issued bool
	value  *T
	err    error
}

// NewDetail creates a detail view on mount for id.
func NewDetail[T any](mount *Mount, id string, fetch DetailFunc[T]) *Detail[T] {
	return &Detail[T]{mount: mount, id: strings.TrimSpace(id), fetch: fetch}
}

// Begin issues the view's request. It returns false while the id or token is missing and
// after the one request has been issued.
func (d *Detail[T]) Begin() (Request, bool) {
	token, ok := d.mount.Token()
	if !ok || d.id == "" || !d.mount.Active() {
		return Request{}, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.issued {
		return Request{}, false
	}

	d.issued = true
	d.seq++
	return Request{MountID: d.mount.ID, Seq: d.seq, Token: token, ID: d.id}, true
}

// Fetch performs req under the mount's context.
func (d *Detail[T]) Fetch(req Request) Result[*T] {
	value, err := d.fetch(d.mount.Context(), req)
	if err != nil && d.mount.Active() {
		d.mount.Logger().Error("detail fetch failed", "id", req.ID, "error", err)
	}
	if err == nil && value == nil {
		d.mount.Logger().Warn("detail fetch returned nothing", "id", req.ID)
	}
	return Result[*T]{Request: req, Value: value, Err: err}
}

// Apply stores res if the mount is still live, reporting whether it did.
func (d *Detail[T]) Apply(res Result[*T]) bool {
	if !d.mount.Active() || res.MountID != d.mount.ID {
		d.mount.Logger().Debug("dropping result for unmounted view", "id", res.ID)
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if res.Seq != d.seq {
		return false
	}

	if res.Err != nil {
		d.err = res.Err
		return true
	}
	d.value = res.Value
	return true
}

// Load runs Begin, Fetch and Apply in sequence and returns [Detail.Err].
func (d *Detail[T]) Load() error {
	req, ok := d.Begin()
	if !ok {
		return nil
	}
	d.Apply(d.Fetch(req))
	return d.Err()
}

// Value returns the loaded resource, if any.
func (d *Detail[T]) Value() (*T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.value != nil
}

// Loading reports whether the resource has not been loaded. Failed fetches stay loading.
func (d *Detail[T]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value == nil
}

// Err returns the fetch error, if any. Views render it as loading; the CLI reports it.
func (d *Detail[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Detail[T]) ID() string { return d.id }

func (d *Detail[T]) Mount() *Mount { return d.mount }
