package tk

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"src.tvim.sh/pkg/ui"
)

// Palette holds the styles used by the widgets.
type Palette struct {
	MenuNormal      ui.Style
	MenuHot         ui.Style
	MenuSelected    ui.Style
	MenuSelectedHot ui.Style

	StatusNormal   ui.Style
	StatusHot      ui.Style
	StatusSelected ui.Style

	Desktop ui.Style
}

// DefaultPalette returns the classic palette: black on light gray bars with
// red hot letters, green selection, and a blue-on-gray desktop.
func DefaultPalette() Palette {
	return Palette{
		MenuNormal:      ui.Style{Fg: ui.Black, Bg: ui.White},
		MenuHot:         ui.Style{Fg: ui.Red, Bg: ui.White},
		MenuSelected:    ui.Style{Fg: ui.Black, Bg: ui.Green},
		MenuSelectedHot: ui.Style{Fg: ui.Red, Bg: ui.Green},

		StatusNormal:   ui.Style{Fg: ui.Black, Bg: ui.White},
		StatusHot:      ui.Style{Fg: ui.Red, Bg: ui.White},
		StatusSelected: ui.Style{Fg: ui.Black, Bg: ui.Green},

		Desktop: ui.Style{Fg: ui.Blue, Bg: ui.White},
	}
}

// PaletteEntries returns the names of the palette entries, in the order they
// are documented.
func PaletteEntries() []string {
	return []string{
		"menu-normal", "menu-hot", "menu-selected", "menu-selected-hot",
		"status-normal", "status-hot", "status-selected",
		"desktop",
	}
}

func (p *Palette) entry(name string) *ui.Style {
	switch name {
	case "menu-normal":
		return &p.MenuNormal
	case "menu-hot":
		return &p.MenuHot
	case "menu-selected":
		return &p.MenuSelected
	case "menu-selected-hot":
		return &p.MenuSelectedHot
	case "status-normal":
		return &p.StatusNormal
	case "status-hot":
		return &p.StatusHot
	case "status-selected":
		return &p.StatusSelected
	case "desktop":
		return &p.Desktop
	}
	return nil
}

// Merge merges style options into the palette, keyed by entry name. All bad
// entries are reported; the valid ones are applied regardless.
func (p *Palette) Merge(entries map[string]map[string]any) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var err error
	for _, name := range names {
		style := p.entry(name)
		if style == nil {
			err = multierr.Append(err, fmt.Errorf("unknown palette entry %q", name))
			continue
		}
		if mergeErr := style.MergeFromOptions(entries[name]); mergeErr != nil {
			err = multierr.Append(err, fmt.Errorf("palette entry %q: %w", name, mergeErr))
		}
	}
	return err
}
