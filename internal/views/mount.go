package views

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/shared"
)

// Mount is the lifetime of one view: it owns the view's token, its cancellable context and a
// child logger tagged with the view name and mount id.
type Mount struct {
	ID   string
	View string

	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	mu         sync.RWMutex
	token      string
	authorized bool
}

// NewMount starts the lifetime of view. Unmount cancels the returned mount's context.
func NewMount(parent context.Context, view string, logger *log.Logger) *Mount {
	if parent == nil {
		parent = context.Background()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	id := shared.GenerateID()
	ctx, cancel := context.WithCancel(parent)

	return &Mount{
		ID:     id,
		View:   view,
		ctx:    ctx,
		cancel: cancel,
		logger: shared.WithLogger(logger, "view", view, "mount", id[:8]),
	}
}

// Authorize resolves the mount's token from src. The exchange happens at most once per mount;
// on failure the token stays absent and every dependent fetch is skipped.
func (m *Mount) Authorize(src auth.TokenSource) bool {
	m.mu.Lock()
	if m.authorized {
		ok := m.token != ""
		m.mu.Unlock()
		return ok
	}
	m.authorized = true
	m.mu.Unlock()

	token, err := src.Token(m.ctx)
	if err != nil {
		m.logger.Error("no token for view", "error", err)
		return false
	}

	m.SetToken(token)
	return true
}

// SetToken stores a token obtained elsewhere.
func (m *Mount) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Active() {
		return
	}
	m.token = token
	m.authorized = true
}

// Token returns the mount's token and whether one is present.
func (m *Mount) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *Mount) Context() context.Context { return m.ctx }

func (m *Mount) Logger() *log.Logger { return m.logger }

// Active reports whether the mount has not been torn down.
func (m *Mount) Active() bool {
	return m.ctx.Err() == nil
}

// Unmount cancels in-flight work and discards the token. Results arriving afterwards are dropped.
func (m *Mount) Unmount() {
	m.cancel()

	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()

	m.logger.Debug("unmounted")
}
