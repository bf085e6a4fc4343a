// Package router keeps the navigation stack of the application.
//
// The stack always starts with the root view and holds at most one route
// view above it. Every change is followed by a render request carrying a
// copy of the stack.
package router

import (
	"errors"
	"sync"

	"github.com/ytget/ytm-offline/internal/logging"
)

// ErrRootPop is returned when Pop would remove the root view
var ErrRootPop = errors.New("cannot pop the root view")

// View is one materialized entry of the stack
type View struct {
	Route    Route
	Template Template
}

// Renderer draws a stack. The last view is the visible one.
type Renderer interface {
	RequestRender(stack []View)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(stack []View)

// RequestRender calls f(stack)
func (f RendererFunc) RequestRender(stack []View) {
	f(stack)
}

// Router owns the view stack
type Router struct {
	mu       sync.Mutex
	stack    []View
	renderer Renderer
	logger   *logging.Logger
}

// New creates a router showing only the root view. Nothing is rendered
// until the first Navigate.
func New(renderer Renderer, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Router{
		stack:    []View{rootView()},
		renderer: renderer,
		logger:   logger,
	}
}

func rootView() View {
	t, _ := Lookup(RouteRoot)
	return View{Route: RouteRoot, Template: t}
}

// SetRenderer replaces the renderer
func (r *Router) SetRenderer(renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderer = renderer
}

// Navigate rebuilds the stack for route. Unknown routes leave only the root
// view.
func (r *Router) Navigate(route Route) {
	r.mu.Lock()
	r.stack = r.resolve(route)
	stack, renderer := r.snapshotLocked(), r.renderer
	r.mu.Unlock()

	r.logger.Debug().Str("route", route.String()).Int("depth", len(stack)).Msg("navigate")
	if renderer != nil {
		renderer.RequestRender(stack)
	}
}

func (r *Router) resolve(route Route) []View {
	stack := []View{rootView()}
	if route == RouteRoot {
		return stack
	}
	t, ok := Lookup(route)
	if !ok {
		r.logger.Debug().Str("route", route.String()).Msg("unknown route, showing root")
		return stack
	}
	return append(stack, View{Route: route, Template: t})
}

// Pop removes the visible view and navigates to the route of the view
// below it.
func (r *Router) Pop() error {
	r.mu.Lock()
	if len(r.stack) <= 1 {
		r.mu.Unlock()
		return ErrRootPop
	}
	r.stack = r.stack[:len(r.stack)-1]
	top := r.stack[len(r.stack)-1].Route
	r.mu.Unlock()

	r.Navigate(top)
	return nil
}

// Stack returns a copy of the stack, root first
func (r *Router) Stack() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Top returns the visible view
func (r *Router) Top() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

func (r *Router) snapshotLocked() []View {
	cp := make([]View, len(r.stack))
	copy(cp, r.stack)
	return cp
}
