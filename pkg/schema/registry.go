package schema

import "github.com/framecheck/framecheck/pkg/check"

// Registry maps names to caller-supplied predicate functions so that
// persisted custom checks can be restored. It is caller-owned state with an
// explicit lifecycle: populate it before loading a document and pass it to
// Load. There is no process-wide registry.
type Registry struct {
	values map[string]check.ValueFunc
	rows   map[string]check.RowFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]check.ValueFunc),
		rows:   make(map[string]check.RowFunc),
	}
}

// RegisterValueFunc registers a per-value predicate under the given name.
// Re-registering a name replaces the previous function.
func (r *Registry) RegisterValueFunc(name string, fn check.ValueFunc) {
	r.values[name] = fn
}

// RegisterRowFunc registers a per-row predicate under the given name.
func (r *Registry) RegisterRowFunc(name string, fn check.RowFunc) {
	r.rows[name] = fn
}

// ValueFunc looks up a per-value predicate by name. Safe on a nil Registry.
func (r *Registry) ValueFunc(name string) (check.ValueFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.values[name]
	return fn, ok
}

// RowFunc looks up a per-row predicate by name. Safe on a nil Registry.
func (r *Registry) RowFunc(name string) (check.RowFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.rows[name]
	return fn, ok
}
