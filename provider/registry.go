package provider

// Registry is the fixed, ordered set of providers every lookup queries.
// Order matters: it is the order of the individual results and the
// tie-break when two providers share the same accuracy.
type Registry struct {
	providers []IPProvider
}

func NewRegistry(providers ...IPProvider) *Registry {
	rv := &Registry{
		providers: make([]IPProvider, len(providers)),
	}

	copy(rv.providers, providers)

	return rv
}

// Providers returns a copy of the registered providers in order.
func (r *Registry) Providers() []IPProvider {
	rv := make([]IPProvider, len(r.providers))
	copy(rv, r.providers)

	return rv
}

func (r *Registry) Len() int {
	return len(r.providers)
}

func (r *Registry) Names() []string {
	rv := make([]string, 0, len(r.providers))

	for _, v := range r.providers {
		rv = append(rv, v.Name())
	}

	return rv
}

// DefaultSchemas lists the built-in JSON services in registry order.
func DefaultSchemas() []Schema {
	return []Schema{
		IPAPICo(),
		IPAPICom(),
		IPInfo(),
		IPGeolocation(),
		IPLocation(),
		FreeGeoIP(),
	}
}
