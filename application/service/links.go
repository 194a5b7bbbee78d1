package service

import (
	"strings"

	"github.com/helixml/delve/domain/linerange"
)

// Placeholders understood by repository url patterns, for example
// https://github.com/{name}/blob/{version}/{path}#L{lno}.
const (
	placeholderName    = "{name}"
	placeholderVersion = "{version}"
	placeholderPath    = "{path}"
	placeholderLine    = "{lno}"
)

// ExternalLink builds a link to the file on an external source viewer.
// Without a range the link points at line 1. At the repository root the
// pattern is cut after "{name}/". The boolean is false when the repository
// has no url pattern.
func ExternalLink(pattern, repoName, commit, filePath string, r *linerange.Range) (string, bool) {
	if pattern == "" {
		return "", false
	}

	if filePath == "" {
		idx := strings.Index(pattern, placeholderName+"/")
		if idx < 0 {
			return strings.Replace(pattern, placeholderName, repoName, 1), true
		}
		root := pattern[:idx+len(placeholderName)+1]
		return strings.Replace(root, placeholderName, repoName, 1), true
	}

	if strings.Contains(pattern, "/"+placeholderPath) {
		filePath = strings.TrimLeft(filePath, "/")
	}

	lno := "1"
	if r != nil {
		lno = r.LineNumber()
	}

	link := strings.Replace(pattern, placeholderLine, lno, 1)
	link = strings.Replace(link, placeholderVersion, commit, 1)
	link = strings.Replace(link, placeholderName, repoName, 1)
	link = strings.Replace(link, placeholderPath, filePath, 1)
	return link, true
}

// WithFragment replaces the fragment of href with the one for r, or strips
// it when r is nil. href must already be escaped so that a '#' inside a
// path segment is not taken for the fragment.
func WithFragment(href string, r *linerange.Range) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if r == nil {
		return href
	}
	return href + r.Fragment()
}
