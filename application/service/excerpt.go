package service

import (
	"fmt"
	"strings"

	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/domain/linerange"
)

// NumberedLine is one line of an excerpt with its 1-based number.
type NumberedLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Excerpt is the part of a file covered by a line range.
type Excerpt struct {
	// Selection is the requested range, nil when the whole file was asked for.
	Selection *linerange.Range
	// Total is the number of lines in the file.
	Total int
	Lines []NumberedLine
}

// NewExcerpt extracts the lines of r from doc, clamped to the file. A nil
// range selects every line.
func NewExcerpt(doc *fileview.Document, r *linerange.Range) Excerpt {
	total := doc.LineCount()
	excerpt := Excerpt{Selection: r, Total: total}

	selected := linerange.New(1, total)
	if r != nil {
		selected = *r
	}
	visible, ok := selected.Clamp(1, total)
	if !ok {
		return excerpt
	}

	excerpt.Lines = make([]NumberedLine, 0, visible.Len())
	for n := visible.Start(); n <= visible.End(); n++ {
		text, _ := doc.Text(n)
		excerpt.Lines = append(excerpt.Lines, NumberedLine{Number: n, Text: text})
	}
	return excerpt
}

// Empty reports whether the range fell entirely outside the file.
func (e Excerpt) Empty() bool { return len(e.Lines) == 0 }

// String renders each line prefixed with its number and a tab.
func (e Excerpt) String() string {
	var b strings.Builder
	for i, l := range e.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\t%s", l.Number, l.Text)
	}
	return b.String()
}
