package capability

import (
	"github.com/Hactar-js/hactar-babel/internal/errors"
)

// Sentinel errors for registry construction.
var (
	// ErrInvalidCapability is returned for a capability with an empty name
	// or no detector.
	ErrInvalidCapability = errors.New("invalid capability")

	// ErrDuplicateCapability is returned when two capabilities share a name.
	ErrDuplicateCapability = errors.New("capability already registered")

	// ErrUnknownRequirement is returned when a capability requires one that
	// was not registered before it.
	ErrUnknownRequirement = errors.New("required capability not registered")
)

// Registry is an ordered, immutable set of capabilities. Registration order
// is evaluation order, and every requirement precedes its dependents.
type Registry struct {
	caps  []Capability
	index map[string]int
}

// NewRegistry builds a registry from caps in the given order.
// Returns an error if:
//   - A capability has an empty name or a nil Detect
//   - Two capabilities share a name
//   - A capability requires one that is not registered earlier
func NewRegistry(caps ...Capability) (*Registry, error) {
	r := &Registry{
		caps:  make([]Capability, 0, len(caps)),
		index: make(map[string]int, len(caps)),
	}

	for _, c := range caps {
		if c.Name == "" || c.Detect == nil {
			return nil, errors.Wrapf(ErrInvalidCapability, "%q", c.Name)
		}
		if _, exists := r.index[c.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateCapability, "%q", c.Name)
		}
		if c.Requires != "" {
			if _, ok := r.index[c.Requires]; !ok {
				return nil, errors.Wrapf(ErrUnknownRequirement, "%q requires %q", c.Name, c.Requires)
			}
		}

		c.Packages = append([]string(nil), c.Packages...)
		r.index[c.Name] = len(r.caps)
		r.caps = append(r.caps, c)
	}

	return r, nil
}

// All returns the capabilities in evaluation order.
func (r *Registry) All() []Capability {
	out := make([]Capability, len(r.caps))
	copy(out, r.caps)
	return out
}

// Get returns the capability with the given name.
func (r *Registry) Get(name string) (Capability, bool) {
	i, ok := r.index[name]
	if !ok {
		return Capability{}, false
	}
	return r.caps[i], true
}

// Names returns the capability names in evaluation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.caps))
	for i, c := range r.caps {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.caps)
}
