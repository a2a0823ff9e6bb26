package tvim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"src.tvim.sh/pkg/cli/tk"
)

// LoadPalette reads a YAML file mapping palette entry names to style options,
// and merges it into p. For example:
//
//	menu-hot:
//	  fg-color: bright-red
//	desktop:
//	  fg-color: white
//	  bg-color: blue
//	  bold: true
func LoadPalette(fname string, p *tk.Palette) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	if err := ParsePalette(data, p); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

// ParsePalette parses the YAML content of a palette file, and merges it into
// p.
func ParsePalette(data []byte, p *tk.Palette) error {
	var entries map[string]map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return err
	}
	return p.Merge(entries)
}
