// Package linerange provides the line range value type and its URL fragment
// serialization (#L10 or #L10-L20).
package linerange

import (
	"math"
	"regexp"
	"strconv"
)

// fragmentPattern matches #L<start> with an optional -L<end>. The second L is
// optional on input. The match is not anchored.
var fragmentPattern = regexp.MustCompile(`#L(\d+)(?:-L?(\d+))?`)

// Range is an inclusive, 1-indexed span of source lines. Immutable value object.
type Range struct {
	start int
	end   int
}

// New creates a Range. An end less than start collapses to a single line.
func New(start, end int) Range {
	if end < start {
		end = start
	}
	return Range{start: start, end: end}
}

// Line creates a single-line Range.
func Line(n int) Range {
	return Range{start: n, end: n}
}

// Start returns the first line.
func (r Range) Start() int { return r.start }

// End returns the last line.
func (r Range) End() int { return r.end }

// Single reports whether the range covers exactly one line.
func (r Range) Single() bool { return r.start == r.end }

// Len returns the number of lines in the range, saturating at math.MaxInt.
func (r Range) Len() int {
	n := r.end - r.start
	if n < 0 || n == math.MaxInt {
		return math.MaxInt
	}
	return n + 1
}

// Contains reports whether line n falls inside the range.
func (r Range) Contains(n int) bool { return n >= r.start && n <= r.end }

// Clamp returns the part of r that lies within [first, last]. The boolean is
// false when the two do not overlap.
func (r Range) Clamp(first, last int) (Range, bool) {
	start, end := max(r.start, first), min(r.end, last)
	if start > end {
		return Range{}, false
	}
	return Range{start: start, end: end}, true
}

// Fragment renders the range as a fragment identifier.
func (r Range) Fragment() string {
	return "#L" + r.LineNumber()
}

// LineNumber returns the line text used after "#L" in fragments and
// external link patterns: "7" for a single line, "7-L12" for a span.
func (r Range) LineNumber() string {
	if r.Single() {
		return strconv.Itoa(r.start)
	}
	return strconv.Itoa(r.start) + "-L" + strconv.Itoa(r.end)
}

// String implements fmt.Stringer.
func (r Range) String() string { return r.Fragment() }

// Parse extracts a Range from a fragment such as "#L42", "#L10-L20" or
// "#L10-20". The boolean is false when the fragment holds no range, which
// callers treat as "no selection" rather than a failure.
func Parse(fragment string) (Range, bool) {
	m := fragmentPattern.FindStringSubmatch(fragment)
	if m == nil {
		return Range{}, false
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, false
	}

	end := start
	if m[2] != "" {
		end, err = strconv.Atoi(m[2])
		if err != nil {
			return Range{}, false
		}
	}

	return New(start, end), true
}

// Render renders r as a fragment identifier.
func Render(r Range) string {
	return r.Fragment()
}

// Expand grows the selection in currentFragment to include clickedLine.
// A line above the current start becomes the new start and the old start
// becomes the end. Any other line becomes the new end. Without a current
// selection the fragment is returned unchanged.
func Expand(clickedLine int, currentFragment string) string {
	r, ok := Parse(currentFragment)
	if !ok {
		return currentFragment
	}
	if clickedLine < r.start {
		return New(clickedLine, r.start).Fragment()
	}
	return New(r.start, clickedLine).Fragment()
}
