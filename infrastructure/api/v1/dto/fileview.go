package dto

import "github.com/helixml/delve/application/service"

// NavigateRequest is the body of POST /fileview/navigate.
type NavigateRequest struct {
	Repo           string  `json:"repo"`
	Revision       string  `json:"rev"`
	Path           string  `json:"path"`
	Action         string  `json:"action"`
	Line           int     `json:"line,omitempty"`
	Shift          bool    `json:"shift,omitempty"`
	Fragment       string  `json:"fragment,omitempty"`
	ScrollTop      float64 `json:"scroll_top,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`
	LineHeight     float64 `json:"line_height,omitempty"`
	HeaderHeight   float64 `json:"header_height,omitempty"`
}

// NavigateResponse describes the view after a navigation event.
type NavigateResponse struct {
	Repo        string        `json:"repo"`
	Revision    string        `json:"rev"`
	Commit      string        `json:"commit"`
	Path        string        `json:"path"`
	Fragment    string        `json:"fragment"`
	Selection   *LineRange    `json:"selection"`
	Highlighted []string      `json:"highlighted"`
	Scrolled    bool          `json:"scrolled"`
	ScrollTop   float64       `json:"scroll_top"`
	Replaced    bool          `json:"replaced"`
	Links       service.Links `json:"links"`
}

// LinesResponse holds numbered lines of a file.
type LinesResponse struct {
	Repo      string                 `json:"repo"`
	Revision  string                 `json:"rev"`
	Commit    string                 `json:"commit"`
	Path      string                 `json:"path"`
	Selection *LineRange             `json:"selection"`
	Total     int                    `json:"total"`
	Lines     []service.NumberedLine `json:"lines"`
}

// TreeEntry is one item of a directory listing. Type is "tree", "blob" or
// "symlink".
type TreeEntry struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	Type          string `json:"type"`
	SymlinkTarget string `json:"symlink_target,omitempty"`
}

// Breadcrumb is one ancestor directory of a listing.
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// TreeResponse holds one directory level of a repository.
type TreeResponse struct {
	Repo        string       `json:"repo"`
	Revision    string       `json:"rev"`
	Commit      string       `json:"commit"`
	Path        string       `json:"path"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Entries     []TreeEntry  `json:"entries"`
	Readme      string       `json:"readme,omitempty"`
}
