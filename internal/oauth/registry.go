package oauth

// Registry maps provider names to adapter factories. It is populated once at
// startup and read-only afterwards, so concurrent lookups need no locking.
// An explicit object rather than package-level state: tests build their own.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name, replacing any previous one.
// Call only during startup, before the registry is shared.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Resolve returns the factory for name. Unknown names are a configuration
// concern for the caller (skip and warn), never a request-time error.
func (r *Registry) Resolve(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered provider names, for diagnostics.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}
