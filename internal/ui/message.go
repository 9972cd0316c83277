package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotapp/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
//
// Every message names the mount that produced it; messages for a mount other than the live
// page's are dropped.
type Msg struct {
	kind    MsgKind
	mountID string
	data    any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgToken MsgKind = iota
	MsgFetched
	MsgStatus
)

// tokenMsg is the constructor for [MsgToken]
func tokenMsg(mountID string, ok bool) Msg {
	return Msg{kind: MsgToken, mountID: mountID, data: ok}
}

// fetchedMsg is the constructor for [MsgFetched]. apply stores the result in the view state.
func fetchedMsg(mountID string, apply func() bool) Msg {
	return Msg{kind: MsgFetched, mountID: mountID, data: apply}
}

// statusMsg is the constructor for [MsgStatus]
func statusMsg(mountID string, text string, err error) Msg {
	return Msg{
		kind:    MsgStatus,
		mountID: mountID,
		data:    status{text: text, err: err},
	}
}

type status struct {
	text string
	err  error
}

// fetchListing begins a listing request and returns the command that performs it off the update loop.
func fetchListing[T any](l *views.Listing[T]) tea.Cmd {
	req, ok := l.Begin()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		res := l.Fetch(req)
		return fetchedMsg(req.MountID, func() bool { return l.Apply(res) })
	}
}

// fetchDetail begins a detail request and returns the command that performs it.
func fetchDetail[T any](d *views.Detail[T]) tea.Cmd {
	req, ok := d.Begin()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		res := d.Fetch(req)
		return fetchedMsg(req.MountID, func() bool { return d.Apply(res) })
	}
}
