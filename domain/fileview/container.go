// Package fileview provides the collaborators a line-addressed file view is
// built from: line elements, their container, the viewport and the
// navigation history.
package fileview

import "strconv"

// Element is a rendered line element addressable by a stable id.
type Element interface {
	ID() string
	// Top is the element's offset from the top of the document.
	Top() float64
	Height() float64
	Highlighted() bool
	SetHighlighted(on bool)
}

// Container holds the line elements of a view. It never creates or destroys
// elements on behalf of callers.
type Container interface {
	Element(id string) (Element, bool)
	// Highlighted returns every element currently carrying the highlight marker.
	Highlighted() []Element
	// LineCount is the number of lines the container holds elements for.
	LineCount() int
}

// Viewport is the scrollable window onto a document.
type Viewport interface {
	Height() float64
	ScrollTop() float64
	ScrollTo(top float64)
}

// History reads and writes the current URL fragment.
type History interface {
	Fragment() string
	// Assign sets the fragment by navigation. It creates a history entry and
	// may trigger the platform's native anchor scroll.
	Assign(fragment string)
}

// Replacer is implemented by histories that can swap the fragment in place,
// without a new history entry and without native anchor scrolling.
type Replacer interface {
	Replace(fragment string)
}

// IDScheme derives an element id from a 1-based line number.
type IDScheme interface {
	ID(line int) string
}

// PrefixIDs is an IDScheme of the form <prefix><line>.
type PrefixIDs string

// ID implements IDScheme.
func (p PrefixIDs) ID(line int) string {
	return string(p) + strconv.Itoa(line)
}

// Id schemes used by the file view.
const (
	// GutterIDs addresses line-number elements: L1, L2, ...
	GutterIDs PrefixIDs = "L"
	// CodeIDs addresses code line elements: LC1, LC2, ...
	CodeIDs PrefixIDs = "LC"
)
