package tk

import (
	"sync"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

// MenuBar is a horizontal bar of menus, each opening a drop-down box.
//
// When inactive, the menu bar only reacts to the keys of its menus and items.
// Once activated, either by CmMenu, a menu key or a mouse click, it handles
// all key events until an item is selected or it is dismissed.
type MenuBar interface {
	Widget
	CommandHandler
	// RenderBox renders the open drop-down box, if any, for a screen of the
	// given size. The position is relative to the top-left corner of the menu
	// bar. It returns nil if no box is open.
	RenderBox(width, height int) (*term.Buffer, term.Pos)
	// Active returns whether the menu bar is currently handling all key
	// events.
	Active() bool
	// HelpCtx returns the help context of the highlighted item, or NoContext.
	HelpCtx() int
	// Menus returns the menus of the menu bar.
	Menus() []Menu
	// CopyState returns a copy of the state.
	CopyState() MenuBarState
	// MutateState calls the given function while locking the state mutex.
	MutateState(f func(*MenuBarState))
}

// MenuBarSpec specifies the configuration and initial state for MenuBar.
type MenuBarSpec struct {
	// Menus shown in the bar, from left to right.
	Menus []Menu
	// Called with the command of a selected item.
	OnCommand func(Command)
	// Styles. The zero value means DefaultPalette.
	Palette *Palette

	// State. When used in [NewMenuBar], this field specifies the initial
	// state.
	State MenuBarState
}

// MenuBarState keeps the mutable state of the MenuBar widget.
type MenuBarState struct {
	// Whether the menu bar handles all key events.
	Active bool
	// Whether the drop-down box of the current menu is shown.
	Open bool
	// Index of the current menu.
	Menu int
	// Index of the highlighted item in the drop-down box.
	Item int
}

type menuBar struct {
	// Mutex for synchronizing access to the state.
	StateMutex sync.RWMutex
	// Configuration and state.
	MenuBarSpec
	// Screen width used for the last RenderBox call, needed to locate the box
	// for mouse events.
	lastWidth int
}

// NewMenuBar creates a new MenuBar from the given spec.
func NewMenuBar(spec MenuBarSpec) MenuBar {
	if spec.OnCommand == nil {
		spec.OnCommand = func(Command) {}
	}
	if spec.Palette == nil {
		p := DefaultPalette()
		spec.Palette = &p
	}
	return &menuBar{MenuBarSpec: spec}
}

func (w *menuBar) Menus() []Menu { return w.MenuBarSpec.Menus }

func (w *menuBar) CopyState() MenuBarState {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}

func (w *menuBar) MutateState(f func(*MenuBarState)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *menuBar) Active() bool { return w.CopyState().Active }

func (w *menuBar) HelpCtx() int {
	s := w.CopyState()
	if !s.Active || !s.Open {
		return NoContext
	}
	items := w.MenuBarSpec.Menus[s.Menu].Items
	if s.Item < 0 || s.Item >= len(items) {
		return NoContext
	}
	return items[s.Item].HelpCtx
}

// Returns the column of each menu title and the column after the last one.
func (w *menuBar) titleCols() []int {
	cols := make([]int, len(w.MenuBarSpec.Menus)+1)
	// The bar starts with one column of padding.
	col := 1
	for i, m := range w.MenuBarSpec.Menus {
		cols[i] = col
		col += TildeWidth(m.Name) + 2
	}
	cols[len(w.MenuBarSpec.Menus)] = col
	return cols
}

func (w *menuBar) Render(width, height int) *term.Buffer {
	s := w.CopyState()
	p := w.Palette
	bb := term.NewBufferBuilder(width)
	bb.WriteSpaces(1, ui.Use(p.MenuNormal))
	for i, m := range w.MenuBarSpec.Menus {
		normal, hot := p.MenuNormal, p.MenuHot
		if s.Active && s.Menu == i {
			normal, hot = p.MenuSelected, p.MenuSelectedHot
		}
		title := ui.Concat(
			ui.T(" ", ui.Use(normal)), TildeText(m.Name, normal, hot),
			ui.T(" ", ui.Use(normal)))
		bb.WriteStyled(title.TrimWcwidth(width - bb.Col))
		if bb.Col >= width {
			break
		}
	}
	if bb.Col < width {
		bb.WriteSpaces(width-bb.Col, ui.Use(p.MenuNormal))
	}
	buf := bb.Buffer()
	buf.TrimToLines(0, 1)
	return fitHeight(buf, height)
}

func (w *menuBar) boxPos(m int, width int) term.Pos {
	_, boxWidth := menuBoxSize(w.MenuBarSpec.Menus[m])
	col := w.titleCols()[m]
	if col+boxWidth > width {
		col = max(0, width-boxWidth)
	}
	return term.Pos{Line: 1, Col: col}
}

func (w *menuBar) RenderBox(width, height int) (*term.Buffer, term.Pos) {
	s := w.CopyState()
	w.MutateState(func(*MenuBarState) { w.lastWidth = width })
	if !s.Active || !s.Open || len(w.MenuBarSpec.Menus[s.Menu].Items) == 0 {
		return nil, term.Pos{}
	}
	box := renderMenuBox(w.MenuBarSpec.Menus[s.Menu], s.Item, *w.Palette)
	// The box is rendered below the bar.
	box.TrimToLines(0, height-1)
	return box, w.boxPos(s.Menu, width)
}

func (w *menuBar) HandleCommand(c Command) bool {
	switch c {
	case CmMenu:
		if len(w.MenuBarSpec.Menus) == 0 {
			return false
		}
		w.MutateState(func(s *MenuBarState) {
			if !s.Active {
				*s = MenuBarState{Active: true}
			}
		})
		return true
	case CmClose:
		if !w.Active() {
			return false
		}
		w.deactivate()
		return true
	}
	return false
}

func (w *menuBar) Handle(event term.Event) bool {
	switch event := event.(type) {
	case term.KeyEvent:
		if w.Active() {
			return w.handleActiveKey(ui.Key(event))
		}
		return w.handleInactiveKey(ui.Key(event))
	case term.MouseEvent:
		return w.handleMouse(event)
	}
	return false
}

func (w *menuBar) handleInactiveKey(k ui.Key) bool {
	for i, m := range w.MenuBarSpec.Menus {
		if (m.Key != ui.NoKey && m.Key.Fold() == k.Fold()) ||
			matchesHotRune(k, HotRune(m.Name), false, true) {
			w.open(i)
			return true
		}
	}
	return w.handleItemKey(k)
}

// Handles keys that select items directly.
func (w *menuBar) handleItemKey(k ui.Key) bool {
	for _, m := range w.MenuBarSpec.Menus {
		for _, item := range m.Items {
			if item.Key != ui.NoKey && item.Key.Fold() == k.Fold() {
				w.deactivate()
				w.post(item.Command)
				return true
			}
		}
	}
	return false
}

func (w *menuBar) handleActiveKey(k ui.Key) bool {
	s := w.CopyState()
	nMenus := len(w.MenuBarSpec.Menus)
	nItems := len(w.MenuBarSpec.Menus[s.Menu].Items)

	switch k {
	case ui.K(ui.Escape):
		if s.Open {
			w.MutateState(func(s *MenuBarState) { s.Open = false })
		} else {
			w.deactivate()
		}
		return true
	case ui.K(ui.F10):
		w.deactivate()
		return true
	case ui.K(ui.Left), ui.K(ui.Right):
		delta := 1
		if k.Rune == ui.Left {
			delta = nMenus - 1
		}
		w.MutateState(func(s *MenuBarState) {
			s.Menu = (s.Menu + delta) % nMenus
			s.Item = 0
		})
		return true
	case ui.K(ui.Down), ui.K(ui.Up):
		if nItems == 0 {
			return true
		}
		w.MutateState(func(s *MenuBarState) {
			switch {
			case !s.Open && k.Rune == ui.Down:
				s.Open, s.Item = true, 0
			case !s.Open:
				s.Open, s.Item = true, nItems-1
			case k.Rune == ui.Down:
				s.Item = (s.Item + 1) % nItems
			default:
				s.Item = (s.Item + nItems - 1) % nItems
			}
		})
		return true
	case ui.K(ui.Home), ui.K(ui.End):
		if s.Open && nItems > 0 {
			w.MutateState(func(s *MenuBarState) {
				if k.Rune == ui.Home {
					s.Item = 0
				} else {
					s.Item = nItems - 1
				}
			})
		}
		return true
	case ui.K(ui.Enter):
		if !s.Open {
			if nItems > 0 {
				w.MutateState(func(s *MenuBarState) { s.Open, s.Item = true, 0 })
			}
		} else if 0 <= s.Item && s.Item < nItems {
			w.selectItem(s.Menu, s.Item)
		}
		return true
	}

	if s.Open {
		for i, item := range w.MenuBarSpec.Menus[s.Menu].Items {
			if matchesHotRune(k, HotRune(item.Name), true, true) {
				w.selectItem(s.Menu, i)
				return true
			}
		}
	}
	for i, m := range w.MenuBarSpec.Menus {
		if matchesHotRune(k, HotRune(m.Name), !s.Open, true) {
			w.open(i)
			return true
		}
	}
	w.handleItemKey(k)
	// The active menu bar is modal, so every key is consumed.
	return true
}

func (w *menuBar) handleMouse(ev term.MouseEvent) bool {
	s := w.CopyState()
	if !ev.Down || ev.Button != 1 {
		return s.Active
	}
	if ev.Line == 0 {
		cols := w.titleCols()
		for i := range w.MenuBarSpec.Menus {
			if cols[i] <= ev.Col && ev.Col < cols[i+1] {
				if s.Active && s.Open && s.Menu == i {
					w.deactivate()
				} else {
					w.open(i)
				}
				return true
			}
		}
	} else if s.Active && s.Open {
		m := w.MenuBarSpec.Menus[s.Menu]
		w.StateMutex.RLock()
		width := w.lastWidth
		w.StateMutex.RUnlock()
		at := w.boxPos(s.Menu, width)
		h, wd := menuBoxSize(m)
		box := term.R(at.Line, at.Col, h, wd)
		if box.Contains(ev.Pos) {
			i := ev.Line - at.Line - 1
			if 0 <= i && i < len(m.Items) {
				w.selectItem(s.Menu, i)
			}
			return true
		}
	}
	if s.Active {
		// Clicking outside the menus dismisses them.
		w.deactivate()
		return true
	}
	return false
}

func (w *menuBar) open(i int) {
	w.MutateState(func(s *MenuBarState) {
		*s = MenuBarState{Active: true, Open: true, Menu: i}
	})
}

func (w *menuBar) deactivate() {
	w.MutateState(func(s *MenuBarState) { *s = MenuBarState{} })
}

func (w *menuBar) selectItem(menu, item int) {
	w.deactivate()
	w.post(w.MenuBarSpec.Menus[menu].Items[item].Command)
}

func (w *menuBar) post(c Command) {
	if c != CmValid {
		w.OnCommand(c)
	}
}
