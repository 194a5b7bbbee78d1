package handler

import (
	"context"
	"fmt"

	"github.com/helixml/delve/application/service"
)

// NewFileViewRegistry registers the file view actions against ctrl.
func NewFileViewRegistry(ctrl *service.Controller) *Registry {
	r := NewRegistry()

	r.Register(ActionLoad, HandlerFunc(func(_ context.Context, _ Event) (service.Outcome, error) {
		return ctrl.Load(), nil
	}))
	r.Register(ActionHashChange, HandlerFunc(func(_ context.Context, _ Event) (service.Outcome, error) {
		return ctrl.HashChange(), nil
	}))
	r.Register(ActionLineClick, lineClick{ctrl: ctrl})
	r.Register(ActionLineShiftClick, lineClick{ctrl: ctrl, shift: true})

	return r
}

type lineClick struct {
	ctrl  *service.Controller
	shift bool
}

// Handle implements Handler. The shift modifier on the event also expands,
// so a plain line.click with shift held behaves like line.shift-click.
func (h lineClick) Handle(_ context.Context, event Event) (service.Outcome, error) {
	if event.Line() < 1 {
		return service.Outcome{}, fmt.Errorf("%w: line must be positive, got %d", service.ErrValidation, event.Line())
	}
	return h.ctrl.ClickLine(event.Line(), h.shift || event.Shift()), nil
}
