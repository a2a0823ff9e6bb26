package tk

import (
	"strings"

	"src.tvim.sh/pkg/cli/term"
	"src.tvim.sh/pkg/ui"
)

// Menu is a top-level entry of a MenuBar, opening a drop-down box of items.
type Menu struct {
	// Title of the menu, with the hot letter marked with "~", like "~F~ile".
	Name string
	// Key that opens the menu, like Alt-F. Optional.
	Key ui.Key
	// Items of the drop-down box.
	Items []MenuItem
}

// MenuItem is an entry of a drop-down box.
type MenuItem struct {
	// Name of the item, with the hot letter marked with "~", like "E~x~it".
	Name string
	// Command posted when the item is selected.
	Command Command
	// Key that selects the item even when the menu is closed. Optional.
	Key ui.Key
	// Help context active while the item is highlighted.
	HelpCtx int
	// Hint shown right-aligned in the box, usually the name of Key.
	Param string
}

// Width of the decorations around the name and parameter of an item: the
// frame and one space of padding on each side.
const menuBoxDecoration = 4

// Minimal gap between the name and the parameter of an item.
const menuBoxParamGap = 2

// Returns the width of the content area of a menu box.
func menuBoxInnerWidth(items []MenuItem) int {
	w := 0
	for _, item := range items {
		iw := TildeWidth(item.Name)
		if item.Param != "" {
			iw += menuBoxParamGap + ui.T(item.Param).Width()
		}
		w = max(w, iw)
	}
	return w
}

// Returns the size of the box of a menu, including the frame.
func menuBoxSize(m Menu) (height, width int) {
	return len(m.Items) + 2, menuBoxInnerWidth(m.Items) + menuBoxDecoration
}

// Renders the drop-down box of a menu with the given item highlighted.
func renderMenuBox(m Menu, selected int, p Palette) *term.Buffer {
	_, width := menuBoxSize(m)
	inner := width - menuBoxDecoration
	frame := ui.Use(p.MenuNormal)

	bb := term.NewBufferBuilder(width)
	bb.Write("┌"+strings.Repeat("─", width-2)+"┐", frame)
	for i, item := range m.Items {
		normal, hot := p.MenuNormal, p.MenuHot
		if i == selected {
			normal, hot = p.MenuSelected, p.MenuSelectedHot
		}
		bb.Newline()
		bb.Write("│", frame)
		bb.Write(" ", ui.Use(normal))
		bb.WriteStyled(TildeText(item.Name, normal, hot))
		pad := inner - TildeWidth(item.Name) - ui.T(item.Param).Width()
		bb.WriteSpaces(pad, ui.Use(normal))
		bb.Write(item.Param+" ", ui.Use(normal))
		bb.Write("│", frame)
	}
	bb.Newline()
	bb.Write("└"+strings.Repeat("─", width-2)+"┘", frame)
	return bb.Buffer()
}
