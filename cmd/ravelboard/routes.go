package main

import (
	"fmt"

	"github.com/RavelOrg/ravel/route"
)

type view uint8

const (
	viewLoading view = iota
	viewBoard
	viewHistory
)

func (v view) String() string {
	switch v {
	case viewLoading:
		return "loading"
	case viewBoard:
		return "board"
	case viewHistory:
		return "history"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(v))
	}
}

// nav is the navigation state: which view is on screen and whether the tools
// panel is open.
type nav struct {
	View      view
	ShowTools bool
}

func (n nav) Describe() string {
	return fmt.Sprintf("view=%s tools=%v", n.View, n.ShowTools)
}

// boardRoute shows the quote board.
type boardRoute struct{}

func (boardRoute) Route() {}

// historyRoute shows the journal history view. The tools panel belongs to
// the board, so leaving the board closes it.
type historyRoute struct{}

func (historyRoute) Route() {}

// toolsRoute opens or closes the tools panel. The panel only exists on the
// board, so the step coerces the view there first when needed, and leaves
// the view field alone when the board is already up.
type toolsRoute struct {
	Show bool
}

func (toolsRoute) Route() {}

// navTable resolves the board's routes and their locator forms.
type navTable struct{}

func (navTable) Resolve(rt route.Route) (route.Step[nav], bool) {
	switch r := rt.(type) {
	case boardRoute:
		return route.Step[nav]{Apply: func(s nav) nav {
			s.View = viewBoard
			return s
		}}, true
	case historyRoute:
		return route.Step[nav]{Apply: func(s nav) nav {
			s.View = viewHistory
			s.ShowTools = false
			return s
		}}, true
	case toolsRoute:
		return route.Step[nav]{
			Require: func(s nav) bool { return s.View == viewBoard },
			Coerce: func(s nav) nav {
				s.View = viewBoard
				return s
			},
			Apply: func(s nav) nav {
				s.ShowTools = r.Show
				return s
			},
		}, true
	}
	return route.Step[nav]{}, false
}

func (t navTable) Locate(loc route.Locator) (route.Step[nav], bool) {
	s, ok := loc.(string)
	if !ok {
		return route.Step[nav]{}, false
	}
	switch s {
	case "ravel://board":
		return t.Resolve(boardRoute{})
	case "ravel://history":
		return t.Resolve(historyRoute{})
	case "ravel://tools":
		return t.Resolve(toolsRoute{Show: true})
	}
	return route.Step[nav]{}, false
}
