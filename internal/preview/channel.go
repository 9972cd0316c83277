package preview

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/shared"
)

// Player is a single audio preview.
type Player interface {
	URL() string
	Start() error
	Pause() error
}

// Finisher is implemented by players that can report the end of playback.
type Finisher interface {
	OnFinish(func())
}

// Channel makes sure at most one preview plays within a view.
//
// It holds the most recently started [Player]. Starting another one pauses the held player
// first. A player that ends on its own is released so the channel never holds finished
// playback.
type Channel struct {
	mu      sync.Mutex
	current Player
	logger  *log.Logger
}

// NewChannel creates an empty channel.
func NewChannel(logger *log.Logger) *Channel {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Channel{logger: logger}
}

// Play pauses the held player if it is not p, then makes p current and starts it.
func (c *Channel) Play(p Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current != p {
		if err := c.current.Pause(); err != nil {
			c.logger.Warn("failed to pause preview", "url", c.current.URL(), "error", err)
		}
	}

	c.current = p
	if f, ok := p.(Finisher); ok {
		f.OnFinish(func() { c.Release(p) })
	}

	if err := p.Start(); err != nil {
		c.current = nil
		c.logger.Error("failed to start preview", "url", p.URL(), "error", err)
		return err
	}

	c.logger.Debug("preview started", "url", p.URL())
	return nil
}

// Release clears p if it is still the held player. Called when playback ends naturally.
func (c *Channel) Release(p Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == p {
		c.current = nil
	}
}

// Stop pauses and clears the held player.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}
	if err := c.current.Pause(); err != nil {
		c.logger.Warn("failed to pause preview", "url", c.current.URL(), "error", err)
	}
	c.current = nil
}

// Current returns the held player, or nil.
func (c *Channel) Current() Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Playing reports whether the held player is playing url.
func (c *Channel) Playing(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && c.current.URL() == url
}
