package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is an indivisible unit on the screen. It is not necessarily 1 column
// wide.
type Cell struct {
	Text  string
	Style string
}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// Rect is a rectangular area of the screen, spanning lines [Min.Line,
// Max.Line) and columns [Min.Col, Max.Col).
type Rect struct {
	Min, Max Pos
}

// R constructs a Rect from its top-left corner and its size.
func R(line, col, height, width int) Rect {
	return Rect{Pos{line, col}, Pos{line + height, col + width}}
}

// Height returns the number of lines covered by r.
func (r Rect) Height() int { return r.Max.Line - r.Min.Line }

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.Max.Col - r.Min.Col }

// Empty returns whether r covers no cell.
func (r Rect) Empty() bool { return r.Height() <= 0 || r.Width() <= 0 }

// Contains returns whether p lies inside r.
func (r Rect) Contains(p Pos) bool {
	return r.Min.Line <= p.Line && p.Line < r.Max.Line &&
		r.Min.Col <= p.Col && p.Col < r.Max.Col
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += runewidth.StringWidth(c.Text)
	}
	return w
}

// Buffer reflects a rectangle area in the terminal, along with a cursor (called
// a "dot" here).
//
// The screen is synchronized one way (Buffer -> terminal), so the width of
// every cell must match the terminal's idea of the width of characters.
type Buffer struct {
	Width int
	// Lines the content of the buffer.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// NewBuffer builds a new buffer, with one empty line.
func NewBuffer(width int) *Buffer {
	return &Buffer{Width: width, Lines: [][]Cell{make([]Cell, 0, width)}}
}

// TrimToLines trims a buffer to the lines [low, high).
func (b *Buffer) TrimToLines(low, high int) {
	if low < 0 {
		low = 0
	}
	if high > len(b.Lines) {
		high = len(b.Lines)
	}
	for i := 0; i < low; i++ {
		b.Lines[i] = nil
	}
	for i := high; i < len(b.Lines); i++ {
		b.Lines[i] = nil
	}
	b.Lines = b.Lines[low:high]
	b.Dot.Line -= low
	if b.Dot.Line < 0 {
		b.Dot.Line = 0
	}
}

// ExtendDown extends b downwards, by adding all lines from b2 to the bottom of
// this buffer and setting b.Width to the larger of b.Width and b2.Width. If
// moveDot is true, it also updates b.Dot to match the dot of b2. It returns b
// itself.
func (b *Buffer) ExtendDown(b2 *Buffer, moveDot bool) *Buffer {
	if b2 == nil || b2.Lines == nil {
		return b
	}
	if moveDot {
		b.Dot = Pos{Line: len(b.Lines) + b2.Dot.Line, Col: b2.Dot.Col}
	}
	b.Lines = append(b.Lines, b2.Lines...)
	b.Width = max(b.Width, b2.Width)
	return b
}

// Blit overlays b2 onto b, with the top-left corner of b2 at the given
// position. Lines of b2 that fall below b are dropped, and each line is
// clipped to b.Width. Cells of b that are partly covered by b2 are replaced by
// spaces. It returns b itself.
func (b *Buffer) Blit(b2 *Buffer, at Pos) *Buffer {
	if b2 == nil || at.Col >= b.Width {
		return b
	}
	for i, line := range b2.Lines {
		y := at.Line + i
		if y < 0 || y >= len(b.Lines) {
			continue
		}
		b.Lines[y] = blitLine(b.Lines[y], line, at.Col, b.Width)
	}
	return b
}

func blitLine(dst, src []Cell, col, width int) []Cell {
	// Clip src to the available width.
	var clipped []Cell
	w := 0
	for _, c := range src {
		cw := runewidth.StringWidth(c.Text)
		if col+w+cw > width {
			break
		}
		clipped = append(clipped, c)
		w += cw
	}
	end := col + w

	var out []Cell
	x := 0
	i := 0
	// Cells entirely before col.
	for ; i < len(dst); i++ {
		cw := runewidth.StringWidth(dst[i].Text)
		if x+cw > col {
			break
		}
		out = append(out, dst[i])
		x += cw
	}
	// Pad the line if it is shorter than col, or blank out the left half of
	// a wide cell straddling col.
	if x < col {
		out = append(out, makeSpacing(col-x)...)
	}
	out = append(out, clipped...)
	// Skip cells covered by src.
	for ; i < len(dst); i++ {
		cw := runewidth.StringWidth(dst[i].Text)
		if x >= end {
			break
		}
		x += cw
		if x > end {
			// The right half of a wide cell is left over.
			out = append(out, makeSpacing(x-end)...)
			i++
			break
		}
	}
	return append(out, dst[i:]...)
}

func makeSpacing(n int) []Cell {
	s := make([]Cell, n)
	for i := 0; i < n; i++ {
		s[i].Text = " "
	}
	return s
}

// Buffer returns itself. This is implemented in analogy with [BufferBuilder],
// so that places that accept either can accept an interface.
func (b *Buffer) Buffer() *Buffer { return b }

// TTYString returns a text representation of the buffer. It uses box drawing
// characters to represent the border of the buffer, and embeds SGR sequences to
// represent the style of the text.
func (b *Buffer) TTYString() string {
	if b == nil {
		return "nil"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Width = %d, Dot = (%d, %d)\n", b.Width, b.Dot.Line, b.Dot.Col)
	// Top border
	sb.WriteString("┌" + strings.Repeat("─", b.Width) + "┐\n")
	for _, line := range b.Lines {
		// Left border
		sb.WriteRune('│')
		// Content
		lastStyle := ""
		usedWidth := 0
		for _, cell := range line {
			if cell.Style != lastStyle {
				switch {
				case lastStyle == "":
					sb.WriteString("\033[" + cell.Style + "m")
				case cell.Style == "":
					sb.WriteString("\033[m")
				default:
					sb.WriteString("\033[;" + cell.Style + "m")
				}
				lastStyle = cell.Style
			}
			sb.WriteString(cell.Text)
			usedWidth += runewidth.StringWidth(cell.Text)
		}
		if lastStyle != "" {
			sb.WriteString("\033[m")
		}
		if usedWidth < b.Width {
			sb.WriteString("$" + strings.Repeat(" ", b.Width-usedWidth-1))
		}
		// Right border and newline
		sb.WriteString("│\n")
	}
	// Bottom border
	sb.WriteString("└" + strings.Repeat("─", b.Width) + "┘\n")
	return sb.String()
}
