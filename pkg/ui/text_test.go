package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type textVTStringTest struct {
	text Text
	want string
}

func testTextVTString(t *testing.T, tests []textVTStringTest) {
	t.Helper()
	for _, test := range tests {
		if got := test.text.VTString(); got != test.want {
			t.Errorf("VTString of %#v -> %q, want %q", test.text, got, test.want)
		}
	}
}

func TestTextVTString(t *testing.T) {
	testTextVTString(t, []textVTStringTest{
		{T("foo"), "\033[mfoo"},
		{Concat(T("foo", Bold), T("bar")), "\033[;1mfoo\033[mbar"},
		{Concat(T("foo"), T("bar", FgRed)), "\033[mfoo\033[31mbar\033[m"},
		{Concat(T("foo", Bold), T("bar", FgRed)), "\033[;1mfoo\033[;31mbar\033[m"},
	})
}

func TestText_Width(t *testing.T) {
	text := Concat(T("File", Bold), T(" 世界"))
	if got := text.Width(); got != 9 {
		t.Errorf("Width -> %d, want 9", got)
	}
}

var trimWcwidthTests = []struct {
	text Text
	wmax int
	want Text
}{
	{Concat(T("abc"), T("def", Bold)), 4, Concat(T("abc"), T("d", Bold))},
	{T("abc"), 3, T("abc")},
	{T("abc"), 10, T("abc")},
	{T("世界"), 3, T("世")},
}

func TestTrimWcwidth(t *testing.T) {
	for _, test := range trimWcwidthTests {
		got := test.text.TrimWcwidth(test.wmax)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("TrimWcwidth(%d) (-want +got):\n%s", test.wmax, diff)
		}
	}
}
