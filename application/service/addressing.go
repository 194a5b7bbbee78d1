package service

import (
	"math"

	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/domain/linerange"
)

// SetFragment replaces the current fragment without adding a history entry
// or triggering native anchor scrolling. Histories that cannot replace in
// place fall back to assignment, which does both. It reports whether the
// in-place path was used.
func SetFragment(h fileview.History, fragment string) bool {
	if r, ok := h.(fileview.Replacer); ok {
		r.Replace(fragment)
		return true
	}
	h.Assign(fragment)
	return false
}

// ClearHighlight removes the highlight marker from every element in c.
func ClearHighlight(c fileview.Container) {
	for _, e := range c.Highlighted() {
		e.SetHighlighted(false)
	}
}

// ApplyHighlight marks the element of every line in r. Lines outside the
// container are skipped, so the work is bounded by the file length.
func ApplyHighlight(r linerange.Range, c fileview.Container, ids fileview.IDScheme) {
	visible, ok := r.Clamp(1, c.LineCount())
	if !ok {
		return
	}
	for n := visible.Start(); n <= visible.End(); n++ {
		if e, ok := c.Element(ids.ID(n)); ok {
			e.SetHighlighted(true)
		}
	}
}

// ExpandRangeToElement returns the fragment produced by shift-clicking line
// while currentFragment is selected.
func ExpandRangeToElement(line int, currentFragment string) string {
	return linerange.Expand(line, currentFragment)
}

// ScrollToRange brings r into view. A single line is placed at a third of
// the viewport height. A span that fits is centred; one that does not is
// pinned near the top, offset by half the first line's height. Nothing
// happens when the first line has no element.
func ScrollToRange(r linerange.Range, c fileview.Container, vp fileview.Viewport) bool {
	first, ok := c.Element(fileview.GutterIDs.ID(r.Start()))
	if !ok {
		return false
	}

	viewportHeight := vp.Height()
	offset := math.Floor(viewportHeight / 3.0)

	if !r.Single() {
		if last, ok := c.Element(fileview.GutterIDs.ID(r.End())); ok {
			span := last.Top() + last.Height() - first.Top()
			if span <= viewportHeight {
				offset = 0.5 * (viewportHeight - span)
			} else {
				offset = first.Height() / 2
			}
		}
	}

	vp.ScrollTo(first.Top() - offset)
	return true
}
