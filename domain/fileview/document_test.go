package fileview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "no trailing newline", content: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "blank last line", content: "a\n\n", want: []string{"a", ""}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines([]byte(tt.content)))
		})
	}
}

func TestNewDocument_Layout(t *testing.T) {
	doc := NewDocument([]byte("one\ntwo\nthree\n"), Layout{LineHeight: 18, HeaderHeight: 40})

	require.Equal(t, 3, doc.LineCount())
	assert.Equal(t, 40.0+3*18.0, doc.Height())

	for _, id := range []string{"L2", "LC2"} {
		e, ok := doc.Element(id)
		require.True(t, ok, id)
		assert.Equal(t, id, e.ID())
		assert.Equal(t, 58.0, e.Top())
		assert.Equal(t, 18.0, e.Height())
	}

	_, ok := doc.Element("L4")
	assert.False(t, ok)
	_, ok = doc.Element("L0")
	assert.False(t, ok)

	text, ok := doc.Text(3)
	require.True(t, ok)
	assert.Equal(t, "three", text)
	_, ok = doc.Text(0)
	assert.False(t, ok)
}

func TestNewDocument_DefaultLayout(t *testing.T) {
	doc := NewDocument([]byte("x"), Layout{})
	assert.Equal(t, DefaultLayout(), doc.Layout())
}

func TestDocument_Highlighted(t *testing.T) {
	doc := NewDocument([]byte(strings.Repeat("x\n", 5)), DefaultLayout())
	assert.Empty(t, doc.Highlighted())
	assert.Equal(t, []string{}, doc.HighlightedIDs())

	for _, id := range []string{"LC4", "L2"} {
		e, ok := doc.Element(id)
		require.True(t, ok)
		e.SetHighlighted(true)
	}

	assert.Equal(t, []string{"L2", "LC4"}, doc.HighlightedIDs())
}

func TestPrefixIDs(t *testing.T) {
	assert.Equal(t, "L12", GutterIDs.ID(12))
	assert.Equal(t, "LC12", CodeIDs.ID(12))
}

func TestWindow_ScrollTo(t *testing.T) {
	w := NewWindow(900)
	w.ScrollTo(250)
	assert.Equal(t, 250.0, w.ScrollTop())
	assert.Equal(t, 50.0, w.Offset(300))

	w.ScrollTo(-10)
	assert.Equal(t, 0.0, w.ScrollTop())
	assert.Equal(t, 2, w.Scrolls())
}

func TestMemoryHistory(t *testing.T) {
	h := NewMemoryHistory("#L1", true)
	r, ok := h.(Replacer)
	require.True(t, ok)
	r.Replace("#L2")
	assert.Equal(t, "#L2", h.Fragment())
	assert.Equal(t, 1, Entries(h))

	plain := NewMemoryHistory("", false)
	_, ok = plain.(Replacer)
	assert.False(t, ok)
	plain.Assign("#L3")
	assert.Equal(t, "#L3", plain.Fragment())
	assert.Equal(t, 2, Entries(plain))
}
