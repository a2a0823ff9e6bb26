package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// NoColor can be set to true to suppress foreground and background colors when
// writing text to the terminal.
var NoColor bool = false

// Style specifies how something (mostly a string) shall be displayed.
type Style struct {
	Fg         Color
	Bg         Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
	Blink      bool
	Inverse    bool
}

// SGR returns SGR sequence for the style.
func (s Style) SGR() string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Italic, "3")
	addIf(s.Underlined, "4")
	addIf(s.Blink, "5")
	addIf(s.Inverse, "7")
	if s.Fg != nil && !NoColor {
		sgr = append(sgr, s.Fg.fgSGR())
	}
	if s.Bg != nil && !NoColor {
		sgr = append(sgr, s.Bg.bgSGR())
	}

	return strings.Join(sgr, ";")
}

// MergeFromOptions merges all recognized values from a map to the current
// Style.
func (s *Style) MergeFromOptions(options map[string]any) error {
	assignColor := func(val any, colorField *Color) string {
		if val == "default" {
			*colorField = nil
			return ""
		} else if s, ok := val.(string); ok {
			color := parseColor(s)
			if color != nil {
				*colorField = color
				return ""
			}
		}
		return "valid color string"
	}
	assignBool := func(val any, attrField *bool) string {
		if b, ok := val.(bool); ok {
			*attrField = b
		} else {
			return "bool value"
		}
		return ""
	}

	for k, v := range options {
		var need string

		switch k {
		case "fg-color":
			need = assignColor(v, &s.Fg)
		case "bg-color":
			need = assignColor(v, &s.Bg)
		case "bold":
			need = assignBool(v, &s.Bold)
		case "dim":
			need = assignBool(v, &s.Dim)
		case "italic":
			need = assignBool(v, &s.Italic)
		case "underlined":
			need = assignBool(v, &s.Underlined)
		case "blink":
			need = assignBool(v, &s.Blink)
		case "inverse":
			need = assignBool(v, &s.Inverse)

		default:
			return fmt.Errorf("unrecognized option '%s'", k)
		}

		if need != "" {
			return fmt.Errorf("value for option '%s' must be a %s", k, need)
		}
	}

	return nil
}

var sgrStyling = map[int]Styling{
	1: Bold,
	2: Dim,
	3: Italic,
	4: Underlined,
	5: Blink,
	7: Inverse,
}

// StyleFromSGR builds a Style from an SGR sequence.
func StyleFromSGR(s string) Style {
	var ret Style
	StylingFromSGR(s).transform(&ret)
	return ret
}

// StylingFromSGR builds a Styling from an SGR sequence.
func StylingFromSGR(s string) Styling {
	styling := jointStyling{}
	codes := getSGRCodes(s)
	for len(codes) > 0 {
		code := codes[0]
		consume := 1

		switch {
		case sgrStyling[code] != nil:
			styling = append(styling, sgrStyling[code])
		case code == 0:
			styling = append(styling, Reset)
		case 30 <= code && code <= 37:
			styling = append(styling, Fg(ansiColor(code-30)))
		case 40 <= code && code <= 47:
			styling = append(styling, Bg(ansiColor(code-40)))
		case 90 <= code && code <= 97:
			styling = append(styling, Fg(ansiBrightColor(code-90)))
		case 100 <= code && code <= 107:
			styling = append(styling, Bg(ansiBrightColor(code-100)))
		case code == 38 && len(codes) >= 3 && codes[1] == 5:
			styling = append(styling, Fg(xterm256Color(codes[2])))
			consume = 3
		case code == 48 && len(codes) >= 3 && codes[1] == 5:
			styling = append(styling, Bg(xterm256Color(codes[2])))
			consume = 3
		case code == 38 && len(codes) >= 5 && codes[1] == 2:
			styling = append(styling, Fg(trueColor{
				uint8(codes[2]), uint8(codes[3]), uint8(codes[4])}))
			consume = 5
		case code == 48 && len(codes) >= 5 && codes[1] == 2:
			styling = append(styling, Bg(trueColor{
				uint8(codes[2]), uint8(codes[3]), uint8(codes[4])}))
			consume = 5
		default:
			// Do nothing; skip this code
		}
		codes = codes[consume:]
	}
	return styling
}

func getSGRCodes(s string) []int {
	var codes []int
	for _, part := range strings.Split(s, ";") {
		if part == "" {
			codes = append(codes, 0)
		} else {
			code, err := strconv.Atoi(part)
			if err == nil {
				codes = append(codes, code)
			}
		}
	}
	return codes
}
