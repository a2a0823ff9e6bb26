package term

import (
	"reflect"
	"testing"
)

func textLine(s, style string) []Cell {
	var cells []Cell
	for _, r := range s {
		cells = append(cells, Cell{string(r), style})
	}
	return cells
}

var blitTests = []struct {
	name string
	dst  *Buffer
	src  *Buffer
	at   Pos
	want *Buffer
}{
	{
		name: "middle of a line",
		dst:  &Buffer{Width: 6, Lines: [][]Cell{textLine("abcdef", "")}},
		src:  &Buffer{Width: 2, Lines: [][]Cell{textLine("XY", "1")}},
		at:   Pos{0, 2},
		want: &Buffer{Width: 6, Lines: [][]Cell{{
			{"a", ""}, {"b", ""}, {"X", "1"}, {"Y", "1"}, {"e", ""}, {"f", ""}}}},
	},
	{
		name: "past the end of a short line",
		dst:  &Buffer{Width: 6, Lines: [][]Cell{textLine("ab", "")}},
		src:  &Buffer{Width: 1, Lines: [][]Cell{textLine("X", "")}},
		at:   Pos{0, 4},
		want: &Buffer{Width: 6, Lines: [][]Cell{textLine("ab  X", "")}},
	},
	{
		name: "clipped at the right edge",
		dst:  &Buffer{Width: 4, Lines: [][]Cell{textLine("abcd", "")}},
		src:  &Buffer{Width: 3, Lines: [][]Cell{textLine("XYZ", "")}},
		at:   Pos{0, 2},
		want: &Buffer{Width: 4, Lines: [][]Cell{textLine("abXY", "")}},
	},
	{
		name: "lines below the buffer are dropped",
		dst:  &Buffer{Width: 3, Lines: [][]Cell{textLine("abc", ""), textLine("def", "")}},
		src:  &Buffer{Width: 1, Lines: [][]Cell{textLine("X", ""), textLine("Y", "")}},
		at:   Pos{1, 0},
		want: &Buffer{Width: 3, Lines: [][]Cell{textLine("abc", ""), textLine("Xef", "")}},
	},
	{
		name: "wide cell straddling the left edge",
		dst:  &Buffer{Width: 4, Lines: [][]Cell{textLine("a世b", "")}},
		src:  &Buffer{Width: 1, Lines: [][]Cell{textLine("X", "")}},
		at:   Pos{0, 2},
		want: &Buffer{Width: 4, Lines: [][]Cell{textLine("a Xb", "")}},
	},
	{
		name: "wide cell straddling the right edge",
		dst:  &Buffer{Width: 5, Lines: [][]Cell{textLine("ab世c", "")}},
		src:  &Buffer{Width: 2, Lines: [][]Cell{textLine("XY", "")}},
		at:   Pos{0, 1},
		want: &Buffer{Width: 5, Lines: [][]Cell{textLine("aXY c", "")}},
	},
}

func TestBuffer_Blit(t *testing.T) {
	for _, test := range blitTests {
		t.Run(test.name, func(t *testing.T) {
			got := test.dst.Blit(test.src, test.at)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got\n%s\nwant\n%s", got.TTYString(), test.want.TTYString())
			}
		})
	}
}

func TestBuffer_TrimToLines(t *testing.T) {
	b := &Buffer{Width: 3, Dot: Pos{2, 1}, Lines: [][]Cell{
		textLine("a", ""), textLine("b", ""), textLine("c", ""), textLine("d", "")}}
	b.TrimToLines(1, 3)
	want := &Buffer{Width: 3, Dot: Pos{1, 1}, Lines: [][]Cell{
		textLine("b", ""), textLine("c", "")}}
	if !reflect.DeepEqual(b, want) {
		t.Errorf("got %v, want %v", b, want)
	}
}

func TestBuffer_ExtendDown(t *testing.T) {
	b := &Buffer{Width: 3, Lines: [][]Cell{textLine("a", "")}}
	b2 := &Buffer{Width: 5, Dot: Pos{0, 1}, Lines: [][]Cell{textLine("b", "")}}
	b.ExtendDown(b2, true)
	want := &Buffer{Width: 5, Dot: Pos{1, 1}, Lines: [][]Cell{
		textLine("a", ""), textLine("b", "")}}
	if !reflect.DeepEqual(b, want) {
		t.Errorf("got %v, want %v", b, want)
	}
}

func TestRect(t *testing.T) {
	r := R(1, 2, 3, 4)
	if r.Height() != 3 || r.Width() != 4 {
		t.Errorf("size of %v = (%d, %d), want (3, 4)", r, r.Height(), r.Width())
	}
	if !r.Contains(Pos{1, 2}) || !r.Contains(Pos{3, 5}) {
		t.Errorf("%v should contain its corners", r)
	}
	if r.Contains(Pos{4, 2}) || r.Contains(Pos{1, 6}) {
		t.Errorf("%v should not contain positions past its end", r)
	}
	if r.Empty() || !R(0, 0, 0, 5).Empty() {
		t.Errorf("Empty is wrong")
	}
}
