// Package handler provides the action registry that routes file view UI
// events to their handlers.
package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/helixml/delve/application/service"
)

// ErrNoHandler indicates no handler is registered for the action.
var ErrNoHandler = errors.New("no handler registered")

// Action is the semantic name attached to an element, such as "line.click".
type Action string

// File view actions.
const (
	ActionLoad           Action = "location.load"
	ActionHashChange     Action = "location.hashchange"
	ActionLineClick      Action = "line.click"
	ActionLineShiftClick Action = "line.shift-click"
)

// String implements fmt.Stringer.
func (a Action) String() string { return string(a) }

// Event carries the attributes of the element an action fired on.
type Event struct {
	line  int
	shift bool
}

// NewEvent creates an Event.
func NewEvent(line int, shift bool) Event {
	return Event{line: line, shift: shift}
}

// Line returns the line number attribute, zero when absent.
func (e Event) Line() int { return e.line }

// Shift reports whether the shift modifier was held.
func (e Event) Shift() bool { return e.shift }

// Handler handles one action.
type Handler interface {
	Handle(ctx context.Context, event Event) (service.Outcome, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) (service.Outcome, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event Event) (service.Outcome, error) {
	return f(ctx, event)
}

// Registry maps actions to their handlers.
type Registry struct {
	handlers map[Action]Handler
	mu       sync.RWMutex
}

// NewRegistry creates a new action registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Action]Handler),
	}
}

// Register adds a handler for an action.
// Subsequent registrations for the same action will overwrite the previous handler.
func (r *Registry) Register(action Action, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = handler
}

// Handler returns the handler for an action.
// Returns ErrNoHandler if no handler is registered.
func (r *Registry) Handler(action Action) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, action)
	}
	return handler, nil
}

// HasHandler checks if a handler is registered for the action.
func (r *Registry) HasHandler(action Action) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[action]
	return ok
}

// Actions returns all registered actions in sorted order.
func (r *Registry) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]Action, 0, len(r.handlers))
	for a := range r.handlers {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// Dispatch runs the handler registered for action.
func (r *Registry) Dispatch(ctx context.Context, action Action, event Event) (service.Outcome, error) {
	h, err := r.Handler(action)
	if err != nil {
		return service.Outcome{}, err
	}
	return h.Handle(ctx, event)
}

// ParseAction validates an action name against the registered actions.
func (r *Registry) ParseAction(name string) (Action, error) {
	a := Action(name)
	if !r.HasHandler(a) {
		return "", fmt.Errorf("%w: %s", ErrNoHandler, name)
	}
	return a, nil
}
