package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotapp/internal/formatter"
	"github.com/desertthunder/spotapp/internal/preview"
	"github.com/desertthunder/spotapp/internal/views"
)

// header is the type-erased detail section of a page.
type header struct {
	load     func() tea.Cmd
	loading  func() bool
	err      func() error
	summary  func() string
	url      func() string
	children func() []list.Item
}

// newHeader wraps a [views.Detail] for display. children may be nil.
func newHeader[T any](d *views.Detail[T], summary func(*T) string, url func(*T) string, children func(*T) []list.Item) *header {
	return &header{
		load:    func() tea.Cmd { return fetchDetail(d) },
		loading: d.Loading,
		err:     d.Err,
		summary: func() string {
			if v, ok := d.Value(); ok {
				return summary(v)
			}
			return ""
		},
		url: func() string {
			if v, ok := d.Value(); ok && url != nil {
				return url(v)
			}
			return ""
		},
		children: func() []list.Item {
			if v, ok := d.Value(); ok && children != nil {
				return children(v)
			}
			return nil
		},
	}
}

// page is one mounted view: an optional detail header above a list that is either a paginated
// listing or the children of the header resource.
type page struct {
	path    string
	title   string
	mount   *views.Mount
	channel *preview.Channel

	header  *header
	listing *views.Listing[list.Item]
	list    list.Model

	// cycle switches the listing query (the country of new releases).
	cycle    func() bool
	subtitle func() string
}

func newPage(path, title string, mount *views.Mount, channel *preview.Channel) *page {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.NextPage.SetEnabled(false)
	l.KeyMap.PrevPage.SetEnabled(false)

	return &page{path: path, title: title, mount: mount, channel: channel, list: l}
}

// load issues the page's requests. Called once the mount holds a token.
func (p *page) load() tea.Cmd {
	var cmds []tea.Cmd
	if p.header != nil {
		cmds = append(cmds, p.header.load())
	}
	if p.listing != nil {
		cmds = append(cmds, fetchListing(p.listing))
	}
	p.refresh()
	return tea.Batch(cmds...)
}

// refresh copies view state into the list model.
func (p *page) refresh() {
	switch {
	case p.listing != nil:
		p.list.SetItems(p.listing.Items())
	case p.header != nil:
		p.list.SetItems(p.header.children())
	}
}

func (p *page) loading() bool {
	if p.header != nil && p.header.loading() {
		return true
	}
	return p.listing != nil && p.listing.Loading()
}

// err returns the most recent fetch failure of the page, if any.
func (p *page) err() error {
	if p.header != nil {
		if err := p.header.err(); err != nil {
			return err
		}
	}
	if p.listing != nil {
		return p.listing.Err()
	}
	return nil
}

func (p *page) next() tea.Cmd {
	if p.listing == nil || !p.listing.Next() {
		return nil
	}
	return p.reload()
}

func (p *page) prev() tea.Cmd {
	if p.listing == nil || !p.listing.Previous() {
		return nil
	}
	return p.reload()
}

func (p *page) switchCountry() tea.Cmd {
	if p.cycle == nil || !p.cycle() {
		return nil
	}
	return p.reload()
}

func (p *page) reload() tea.Cmd {
	cmd := fetchListing(p.listing)
	p.refresh()
	p.list.ResetSelected()
	return cmd
}

func (p *page) selected() (entry, bool) {
	item := p.list.SelectedItem()
	if item == nil {
		return nil, false
	}
	e, ok := item.(entry)
	return e, ok
}

// externalURL is the web player link of the selected row, falling back to the page resource.
func (p *page) externalURL() string {
	if e, ok := p.selected(); ok && e.URL() != "" {
		return e.URL()
	}
	if p.header != nil {
		return p.header.url()
	}
	return ""
}

func (p *page) unmount() {
	p.channel.Stop()
	p.mount.Unmount()
}

func (p *page) setSize(width, height int) {
	reserved := 8
	if p.header != nil {
		reserved += strings.Count(p.header.summary(), "\n") + 2
	}
	p.list.SetSize(max(width-4, 20), max(height-reserved, 5))
}

func (p *page) view(spinner string) string {
	var b strings.Builder

	title := p.title
	if p.subtitle != nil {
		title = fmt.Sprintf("%s · %s", title, p.subtitle())
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if p.header != nil {
		if p.header.loading() {
			b.WriteString(fmt.Sprintf("%s Loading…\n\n", spinner))
		} else {
			b.WriteString(styles.pane.Render(strings.TrimRight(p.header.summary(), "\n")))
			b.WriteString("\n\n")
		}
	}

	if p.listing != nil && p.listing.Loading() {
		b.WriteString(fmt.Sprintf("%s Loading…\n", spinner))
		if !p.listing.Pending() && p.listing.Err() != nil {
			b.WriteString(styles.warn.Render("Could not load this page."))
			b.WriteString("\n")
		}
	} else if len(p.list.Items()) > 0 {
		b.WriteString(p.list.View())
		b.WriteString("\n")
	} else if p.header == nil || !p.header.loading() {
		b.WriteString(styles.help.Render("Nothing here."))
		b.WriteString("\n")
	}

	if p.listing != nil && !p.listing.Loading() {
		b.WriteString(styles.help.Render(formatter.PageFooter(p.listing.Index(), p.listing.LastPage(), p.listing.Total())))
		b.WriteString("\n")
	}

	return b.String()
}
