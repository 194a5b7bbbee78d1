package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/fileview"
)

// DefaultViewportHeight is used when a request does not give one.
const DefaultViewportHeight = 600

// NavigateRequest describes one navigation event against a file.
type NavigateRequest struct {
	Repo     string
	Revision string
	Path     string
	Action   Action
	Line     int
	Shift    bool
	// Fragment is the fragment identifier before the event.
	Fragment string
	// ScrollTop restores the viewport position before the event.
	ScrollTop      float64
	ViewportHeight float64
	// LineHeight and HeaderHeight override the service layout when positive.
	LineHeight   float64
	HeaderHeight float64
}

// Navigator replays navigation events against files read from repositories.
// Each call builds a fresh controller, so requests are independent.
type Navigator struct {
	files  *service.FileView
	logger *slog.Logger
}

// NewNavigator creates a new Navigator.
func NewNavigator(files *service.FileView, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{files: files, logger: logger}
}

// Navigate opens the requested file and dispatches the action through the
// file view registry.
func (n *Navigator) Navigate(ctx context.Context, req NavigateRequest) (service.File, service.Outcome, error) {
	file, err := n.files.Open(ctx, req.Repo, req.Revision, req.Path)
	if err != nil {
		return service.File{}, service.Outcome{}, err
	}

	layout := n.files.Layout()
	if req.LineHeight > 0 {
		layout.LineHeight = req.LineHeight
	}
	if req.HeaderHeight > 0 {
		layout.HeaderHeight = req.HeaderHeight
	}
	height := req.ViewportHeight
	if height <= 0 {
		height = DefaultViewportHeight
	}

	doc := file.Document(layout)
	window := fileview.NewWindow(height)
	window.ScrollTo(req.ScrollTop)
	history := fileview.NewMemoryHistory(req.Fragment, true)
	ctrl := service.NewController(file.ViewState(), doc, window, history, n.logger)

	registry := NewFileViewRegistry(ctrl)
	action, err := registry.ParseAction(req.Action.String())
	if err != nil {
		return service.File{}, service.Outcome{}, fmt.Errorf("%w: %w, want one of %v", service.ErrValidation, err, registry.Actions())
	}

	out, err := registry.Dispatch(ctx, action, NewEvent(req.Line, req.Shift))
	if err != nil {
		return service.File{}, service.Outcome{}, err
	}

	n.logger.DebugContext(ctx, "navigated",
		slog.String("repo", file.Repository().Name()),
		slog.String("path", file.Path()),
		slog.String("action", req.Action.String()),
		slog.String("fragment", out.Fragment),
	)
	return file, out, nil
}
