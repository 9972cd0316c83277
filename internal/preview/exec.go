package preview

import (
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/shared"
)

var startProcess = func(cmd *exec.Cmd) error { return cmd.Start() }

// ExecPlayer plays a preview URL through an external command such as mpv.
// Pause terminates the process; a later Start launches it again from the beginning.
type ExecPlayer struct {
	url     string
	command string
	args    []string
	logger  *log.Logger

	mu       sync.Mutex
	cmd      *exec.Cmd
	onFinish func()
}

// NewExecPlayer creates a player for url. A track without a preview yields [shared.ErrNoPreview].
func NewExecPlayer(cfg shared.PreviewConfig, url string, logger *log.Logger) (*ExecPlayer, error) {
	if url == "" {
		return nil, shared.ErrNoPreview
	}
	if cfg.Command == "" {
		return nil, fmt.Errorf("%w: preview command is not configured", shared.ErrInvalidConfig)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExecPlayer{url: url, command: cfg.Command, args: cfg.Args, logger: logger}, nil
}

func (p *ExecPlayer) URL() string { return p.url }

// OnFinish registers fn to run when the running process exits on its own.
func (p *ExecPlayer) OnFinish(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinish = fn
}

// Start launches the command. It is a no-op while the process is running.
func (p *ExecPlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return nil
	}

	args := append(append([]string{}, p.args...), p.url)
	cmd := exec.Command(p.command, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := startProcess(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.command, err)
	}
	p.cmd = cmd

	go p.wait(cmd)
	return nil
}

func (p *ExecPlayer) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	p.mu.Lock()
	current := p.cmd == cmd
	if current {
		p.cmd = nil
	}
	fn := p.onFinish
	p.mu.Unlock()

	if err != nil {
		p.logger.Debug("preview process exited", "url", p.url, "error", err)
	}
	// A killed or replaced process has already been accounted for by Pause.
	if current && fn != nil {
		fn()
	}
}

// Pause terminates the running process, if any.
func (p *ExecPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to stop preview: %w", err)
	}
	p.cmd = nil
	return nil
}

// Running reports whether the process is alive.
func (p *ExecPlayer) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}
