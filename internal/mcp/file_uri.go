package mcp

import (
	"strings"

	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/linerange"
)

// uriScheme prefixes file URIs returned by tools.
const uriScheme = "delve://"

// FileURI addresses a file, optionally narrowed to a line range, in the
// same {repo}/blob/{rev}/{path} shape as the HTML view.
// Immutable value object; methods return copies.
type FileURI struct {
	repo     string
	revision string
	path     string
	lines    *linerange.Range
}

// NewFileURI creates a FileURI for the whole file.
func NewFileURI(repo, revision, path string) FileURI {
	return FileURI{repo: repo, revision: revision, path: strings.TrimLeft(path, "/")}
}

// WithLineRange returns a copy narrowed to r.
func (u FileURI) WithLineRange(r linerange.Range) FileURI {
	u.lines = &r
	return u
}

// String builds the URI, e.g. delve://helixml/delve/blob/HEAD/go.mod#L1-L3.
func (u FileURI) String() string {
	s := uriScheme + strings.TrimPrefix(service.ViewPath(u.repo, u.revision, u.path), "/view/")
	if u.lines != nil {
		s += u.lines.Fragment()
	}
	return s
}
