package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/auth"
	"github.com/desertthunder/spotapp/internal/preview"
	"github.com/desertthunder/spotapp/internal/router"
	"github.com/desertthunder/spotapp/internal/services"
	"github.com/desertthunder/spotapp/internal/shared"
	"github.com/desertthunder/spotapp/internal/views"
)

// PlayerFunc creates the player for a preview url.
type PlayerFunc func(url string) (preview.Player, error)

// Options configures a [Model].
type Options struct {
	Catalog   services.Catalog
	Tokens    auth.TokenSource
	Browse    shared.BrowseConfig
	Preview   shared.PreviewConfig
	Logger    *log.Logger
	StartPath string

	// OpenURL opens a web player link. Defaults to [shared.OpenBrowser].
	OpenURL func(string) error
	// NewPlayer defaults to an external command player built from Preview.
	NewPlayer PlayerFunc
}

// Model represents the TUI application state. Exactly one page is mounted at a time.
type Model struct {
	ctx       context.Context
	env       *env
	routes    *router.Router[pageFactory]
	openURL   func(string) error
	newPlayer PlayerFunc
	logger    *log.Logger

	start   string
	current *page
	history []string

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	status  string
	failed  bool
	width   int
	height  int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Model{
		ctx:       ctx,
		env:       &env{catalog: opts.Catalog, tokens: opts.Tokens, browse: opts.Browse, logger: logger},
		routes:    routes(),
		openURL:   opts.OpenURL,
		newPlayer: opts.NewPlayer,
		logger:    logger,
		start:     opts.StartPath,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok)),
		help:      help.New(),
		keys:      newKeyMap(),
	}

	if m.start == "" {
		m.start = router.Home
	}
	if m.openURL == nil {
		m.openURL = shared.OpenBrowser
	}
	if m.newPlayer == nil {
		cfg := opts.Preview
		m.newPlayer = func(url string) (preview.Player, error) {
			return preview.NewExecPlayer(cfg, url, logger)
		}
	}

	m.routes.Use(logResolve(logger))
	return m
}

// logResolve logs every path resolution.
func logResolve(logger *log.Logger) router.Middleware[pageFactory] {
	return func(next router.ResolveFunc[pageFactory]) router.ResolveFunc[pageFactory] {
		return func(path string) (router.Match[pageFactory], error) {
			match, err := next(path)
			if err != nil {
				logger.Warn("unresolved path", "path", path, "error", err)
				return match, err
			}
			logger.Debug("navigating", "path", match.Path, "route", match.Pattern)
			return match, nil
		}
	}
}

// Init mounts the start page, falling back to the home page when the start path has no view.
func (m *Model) Init() tea.Cmd {
	cmd, err := m.mount(m.start)
	if err != nil {
		cmd, _ = m.mount(router.Home)
		m.setStatus("", err)
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// Path returns the path of the mounted page.
func (m *Model) Path() string {
	if m.current == nil {
		return ""
	}
	return m.current.path
}

// mount unmounts the live page and mounts the view for path. The token exchange for the new
// mount runs as a command.
func (m *Model) mount(path string) (tea.Cmd, error) {
	match, err := m.routes.Resolve(path)
	if err != nil {
		return nil, err
	}

	if m.current != nil {
		m.current.unmount()
	}

	mt := views.NewMount(m.ctx, match.Pattern, m.logger)
	ch := preview.NewChannel(mt.Logger())
	p := match.Target(m.env, match.Path, mt, ch, match.Params)
	if m.width > 0 {
		p.setSize(m.width, m.height)
	}
	m.current = p
	m.status, m.failed = "", false

	tokens := m.env.tokens
	return func() tea.Msg {
		return tokenMsg(mt.ID, mt.Authorize(tokens))
	}, nil
}

// navigate mounts path and remembers the page being left.
func (m *Model) navigate(path string) tea.Cmd {
	from := m.Path()
	cmd, err := m.mount(path)
	if err != nil {
		m.setStatus("", err)
		return nil
	}
	if from != "" {
		m.history = append(m.history, from)
	}
	return cmd
}

// back remounts the previous page.
func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		return nil
	}
	path := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	cmd, err := m.mount(path)
	if err != nil {
		m.setStatus("", err)
		return nil
	}
	return cmd
}

func (m *Model) setStatus(text string, err error) {
	if err != nil {
		m.status, m.failed = err.Error(), true
		return
	}
	m.status, m.failed = text, false
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.current != nil {
			m.current.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m, m.handleMsg(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	if m.current == nil || msg.mountID != m.current.mount.ID {
		m.logger.Debug("dropping message for unmounted view", "kind", msg.kind)
		return nil
	}
	p := m.current

	switch msg.kind {
	case MsgToken:
		if ok, _ := msg.data.(bool); !ok {
			m.setStatus("", shared.ErrNotAuthenticated)
			return nil
		}
		return p.load()

	case MsgFetched:
		apply, _ := msg.data.(func() bool)
		if apply == nil || !apply() {
			return nil
		}
		p.refresh()
		if m.width > 0 {
			p.setSize(m.width, m.height)
		}
		if err := p.err(); err != nil {
			m.setStatus("", err)
		}
		return nil

	case MsgStatus:
		s, _ := msg.data.(status)
		m.setStatus(s.text, s.err)
	}
	return nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.current
	if p == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		p.unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		return m, m.back()

	case key.Matches(msg, m.keys.enter):
		if e, ok := p.selected(); ok && e.Path() != "" {
			return m, m.navigate(e.Path())
		}
		return m, nil

	case key.Matches(msg, m.keys.next):
		return m, p.next()

	case key.Matches(msg, m.keys.prev):
		return m, p.prev()

	case key.Matches(msg, m.keys.country):
		return m, p.switchCountry()

	case key.Matches(msg, m.keys.play):
		m.togglePreview(p)
		return m, nil

	case key.Matches(msg, m.keys.stop):
		p.channel.Stop()
		m.setStatus("stopped", nil)
		return m, nil

	case key.Matches(msg, m.keys.open):
		return m, m.open(p)
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return m, cmd
}

// togglePreview plays the selected row's preview, or stops it when it is already playing.
func (m *Model) togglePreview(p *page) {
	e, ok := p.selected()
	if !ok || e.Preview() == "" {
		m.setStatus("", shared.ErrNoPreview)
		return
	}

	url := e.Preview()
	if p.channel.Playing(url) {
		p.channel.Stop()
		m.setStatus("stopped", nil)
		return
	}

	player, err := m.newPlayer(url)
	if err != nil {
		m.setStatus("", err)
		return
	}
	if err := p.channel.Play(player); err != nil {
		m.setStatus("", err)
		return
	}
	m.setStatus(fmt.Sprintf("playing %s", e.Title()), nil)
}

func (m *Model) open(p *page) tea.Cmd {
	url := p.externalURL()
	if url == "" {
		m.setStatus("", errors.New("nothing to open"))
		return nil
	}

	open, id := m.openURL, p.mount.ID
	return func() tea.Msg {
		if err := open(url); err != nil {
			return statusMsg(id, "", err)
		}
		return statusMsg(id, "opened "+url, nil)
	}
}

// View renders the mounted page with the status line and key help.
func (m *Model) View() string {
	if m.current == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.current.view(m.spinner.View()))

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(styles.err.Render("Error: " + m.status))
		} else {
			b.WriteString(styles.ok.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
