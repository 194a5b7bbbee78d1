package service

import (
	"log/slog"

	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/domain/linerange"
)

// ViewState is the explicit state of one file view. The controller owns it;
// the addressing functions only ever see the fields they need.
type ViewState struct {
	Repo       string
	Revision   string
	Commit     string
	Path       string
	URLPattern string
	// Permalink and HeadLink are anchor hrefs whose fragment follows the selection.
	Permalink string
	HeadLink  string
	// Highlight picks which line elements carry the highlight marker.
	Highlight fileview.IDScheme

	selection    *linerange.Range
	externalLink string
}

// Selection returns the range currently addressed by the fragment, if any.
func (s ViewState) Selection() (linerange.Range, bool) {
	if s.selection == nil {
		return linerange.Range{}, false
	}
	return *s.selection, true
}

// ExternalLink returns the outbound link for the current selection.
func (s ViewState) ExternalLink() string { return s.externalLink }

// Links holds the anchors refreshed after every navigation.
type Links struct {
	External  string `json:"external,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	HeadLink  string `json:"head_link,omitempty"`
}

// Outcome describes the effect of one navigation event.
type Outcome struct {
	Fragment    string
	Selection   *linerange.Range
	Highlighted []string
	Scrolled    bool
	ScrollTop   float64
	// Replaced is false when the fragment had to be assigned because the
	// history cannot replace in place.
	Replaced bool
	Links    Links
}

// Controller keeps highlight, scroll position and fragment consistent for a
// single file view.
type Controller struct {
	state     ViewState
	container fileview.Container
	viewport  fileview.Viewport
	history   fileview.History
	logger    *slog.Logger
}

// NewController creates a Controller. A nil Highlight scheme defaults to
// code line elements.
func NewController(
	state ViewState,
	container fileview.Container,
	viewport fileview.Viewport,
	history fileview.History,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if state.Highlight == nil {
		state.Highlight = fileview.CodeIDs
	}
	return &Controller{
		state:     state,
		container: container,
		viewport:  viewport,
		history:   history,
		logger:    logger,
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return c.state }

// Load handles the initial page load.
func (c *Controller) Load() Outcome {
	return c.sync(true, true)
}

// HashChange handles an externally driven fragment change such as
// back/forward navigation or a pasted link.
func (c *Controller) HashChange() Outcome {
	return c.sync(true, true)
}

// ClickLine handles a click on a line number. A plain click selects the
// line; a shift click grows the current selection to it. The clicked line is
// already visible, so no scroll follows.
func (c *Controller) ClickLine(line int, shift bool) Outcome {
	current := c.history.Fragment()

	fragment := linerange.Line(line).Fragment()
	if shift {
		fragment = ExpandRangeToElement(line, current)
	}

	replaced := true
	if fragment != current {
		replaced = SetFragment(c.history, fragment)
		if !replaced {
			c.logger.Debug("history cannot replace fragment in place, assigned instead",
				slog.String("fragment", fragment),
			)
		}
	}

	return c.sync(false, replaced)
}

func (c *Controller) sync(scroll bool, replaced bool) Outcome {
	ClearHighlight(c.container)

	fragment := c.history.Fragment()
	out := Outcome{
		Fragment:  fragment,
		Replaced:  replaced,
		ScrollTop: c.viewport.ScrollTop(),
	}

	c.state.selection = nil
	if r, ok := linerange.Parse(fragment); ok {
		c.state.selection = &r
		out.Selection = &r
		ApplyHighlight(r, c.container, c.state.Highlight)
		if scroll {
			out.Scrolled = ScrollToRange(r, c.container, c.viewport)
			out.ScrollTop = c.viewport.ScrollTop()
		}
	}

	out.Highlighted = highlightedIDs(c.container)
	out.Links = c.refreshLinks()
	return out
}

func (c *Controller) refreshLinks() Links {
	s := c.state
	external, ok := ExternalLink(s.URLPattern, s.Repo, s.Commit, s.Path, s.selection)
	if !ok {
		external = ""
	}
	c.state.externalLink = external

	links := Links{External: external}
	if s.Permalink != "" {
		links.Permalink = WithFragment(s.Permalink, s.selection)
		c.state.Permalink = links.Permalink
	}
	if s.HeadLink != "" {
		links.HeadLink = WithFragment(s.HeadLink, s.selection)
		c.state.HeadLink = links.HeadLink
	}
	return links
}

func highlightedIDs(c fileview.Container) []string {
	elements := c.Highlighted()
	ids := make([]string, len(elements))
	for i, e := range elements {
		ids[i] = e.ID()
	}
	return ids
}
