package fileview

import (
	"strings"
)

// Default layout values, in pixels.
const (
	DefaultLineHeight   = 20.0
	DefaultHeaderHeight = 0.0
)

type lineElement struct {
	id          string
	line        int
	top         float64
	height      float64
	highlighted bool
}

func (e *lineElement) ID() string             { return e.id }
func (e *lineElement) Top() float64           { return e.top }
func (e *lineElement) Height() float64        { return e.height }
func (e *lineElement) Highlighted() bool      { return e.highlighted }
func (e *lineElement) SetHighlighted(on bool) { e.highlighted = on }

// Layout describes how a Document positions its lines.
type Layout struct {
	LineHeight   float64
	HeaderHeight float64
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{LineHeight: DefaultLineHeight, HeaderHeight: DefaultHeaderHeight}
}

func (l Layout) normalized() Layout {
	if l.LineHeight <= 0 {
		l.LineHeight = DefaultLineHeight
	}
	if l.HeaderHeight < 0 {
		l.HeaderHeight = 0
	}
	return l
}

// Document is an in-memory rendering of a source file. Every line has a
// gutter element (L<n>) and a code element (LC<n>) laid out at a fixed
// line height below an optional header.
type Document struct {
	lines    []string
	layout   Layout
	elements []*lineElement
	byID     map[string]*lineElement
}

// NewDocument lays out content. A trailing newline does not start a new line.
func NewDocument(content []byte, layout Layout) *Document {
	layout = layout.normalized()
	lines := SplitLines(content)

	d := &Document{
		lines:    lines,
		layout:   layout,
		elements: make([]*lineElement, 0, 2*len(lines)),
		byID:     make(map[string]*lineElement, 2*len(lines)),
	}

	for i := range lines {
		n := i + 1
		top := layout.HeaderHeight + float64(i)*layout.LineHeight
		for _, scheme := range []PrefixIDs{GutterIDs, CodeIDs} {
			e := &lineElement{
				id:     scheme.ID(n),
				line:   n,
				top:    top,
				height: layout.LineHeight,
			}
			d.elements = append(d.elements, e)
			d.byID[e.id] = e
		}
	}

	return d
}

// SplitLines splits file content into lines, dropping carriage returns and
// the empty line after a final newline.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Element implements Container.
func (d *Document) Element(id string) (Element, bool) {
	e, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// Highlighted implements Container. Elements are returned in document order.
func (d *Document) Highlighted() []Element {
	var result []Element
	for _, e := range d.elements {
		if e.highlighted {
			result = append(result, e)
		}
	}
	return result
}

// HighlightedIDs returns the ids of highlighted elements in document order.
func (d *Document) HighlightedIDs() []string {
	ids := []string{}
	for _, e := range d.Highlighted() {
		ids = append(ids, e.ID())
	}
	return ids
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	result := make([]string, len(d.lines))
	copy(result, d.lines)
	return result
}

// Text returns the text of line n, or false when n is outside the document.
func (d *Document) Text(n int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	return d.lines[n-1], true
}

// Layout returns the document layout.
func (d *Document) Layout() Layout { return d.layout }

// Height returns the full rendered height including the header.
func (d *Document) Height() float64 {
	return d.layout.HeaderHeight + float64(len(d.lines))*d.layout.LineHeight
}

var _ Container = (*Document)(nil)
