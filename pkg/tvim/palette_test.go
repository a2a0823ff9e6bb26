package tvim

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"src.tvim.sh/pkg/cli/tk"
	"src.tvim.sh/pkg/testutil"
	"src.tvim.sh/pkg/ui"
)

func TestParsePalette(t *testing.T) {
	p := tk.DefaultPalette()
	err := ParsePalette([]byte(`
menu-hot:
  fg-color: bright-red
desktop:
  fg-color: white
  bg-color: blue
  bold: true
`), &p)
	if err != nil {
		t.Fatalf("ParsePalette -> %v", err)
	}
	if want := (ui.Style{Fg: ui.BrightRed, Bg: ui.White}); p.MenuHot != want {
		t.Errorf("MenuHot = %v, want %v", p.MenuHot, want)
	}
	if want := (ui.Style{Fg: ui.White, Bg: ui.Blue, Bold: true}); p.Desktop != want {
		t.Errorf("Desktop = %v, want %v", p.Desktop, want)
	}
	if want := tk.DefaultPalette().MenuNormal; p.MenuNormal != want {
		t.Errorf("MenuNormal changed to %v", p.MenuNormal)
	}
}

func TestParsePalette_ReportsAllErrors(t *testing.T) {
	p := tk.DefaultPalette()
	err := ParsePalette([]byte(`
no-such-entry:
  bold: true
status-hot:
  bold: yes please
desktop:
  fg-color: red
`), &p)
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got errors %v, want 2 errors", errs)
	}
	if !strings.Contains(errs[0].Error(), `"no-such-entry"`) {
		t.Errorf("got first error %v, want one about no-such-entry", errs[0])
	}
	if !strings.Contains(errs[1].Error(), `"status-hot"`) {
		t.Errorf("got second error %v, want one about status-hot", errs[1])
	}
	// Valid entries are applied.
	if p.Desktop.Fg != ui.Red {
		t.Errorf("Desktop.Fg = %v, want red", p.Desktop.Fg)
	}
}

func TestParsePalette_BadYAML(t *testing.T) {
	p := tk.DefaultPalette()
	if err := ParsePalette([]byte("desktop: [a, b"), &p); err == nil {
		t.Errorf("ParsePalette -> nil, want error")
	}
}

func TestLoadPalette(t *testing.T) {
	testutil.InTempDir(t)
	testutil.MustWriteFile("palette.yaml", "status-normal: {inverse: true}\n")

	p := tk.DefaultPalette()
	if err := LoadPalette("palette.yaml", &p); err != nil {
		t.Fatalf("LoadPalette -> %v", err)
	}
	if !p.StatusNormal.Inverse {
		t.Errorf("StatusNormal.Inverse not set")
	}

	err := LoadPalette("missing.yaml", &p)
	if !os.IsNotExist(err) {
		t.Errorf("LoadPalette on missing file -> %v, want not-exist error", err)
	}

	testutil.MustWriteFile("bad.yaml", "desktop: {bold: 1}\n")
	err = LoadPalette("bad.yaml", &p)
	if err == nil || !strings.HasPrefix(err.Error(), "bad.yaml: ") {
		t.Errorf("LoadPalette on bad file -> %v, want error prefixed with file name", err)
	}
}
