package handler

import (
	"maps"
	"slices"
)

// Registry maps qualified annotation type names to the handler for them.
// It is built once at startup and only read afterwards.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Provide registers h under its annotation name and returns the registry for
// chaining. A later handler for the same annotation replaces the earlier one.
func (r *Registry) Provide(h Handler) *Registry {
	r.handlers[h.Annotation()] = h
	return r
}

// Lookup returns the handler registered for a qualified annotation name.
func (r *Registry) Lookup(annotation string) (Handler, bool) {
	h, ok := r.handlers[annotation]
	return h, ok
}

// Names lists the registered annotation names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}

// DefaultRegistry registers the SwingInvokeLater, SwingInvokeAndWait and
// DoPrivileged handlers.
func DefaultRegistry(passes Passes, d Dispatcher) *Registry {
	return NewRegistry().
		Provide(NewSwingInvokeLater(passes, d)).
		Provide(NewSwingInvokeAndWait(passes, d)).
		Provide(NewDoPrivileged(passes))
}
