package di

import (
	"sort"
	"strings"
	"unicode"
)

// Registry holds service definitions keyed by id.
//
// It is intentionally:
// - ordered (ids remember the order they were first registered)
// - build-time only
// - not safe for concurrent mutation
//
// Expected usage:
//
//	reg := di.NewRegistry()
//	_ = reg.Set("mailer", di.NewDefinition("App\\Mailer"))
//	def, err := reg.Get("mailer")
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*Definition{}}
}

// ValidateID reports whether id can be used as a service id.
func ValidateID(id string) error {
	if id == "" || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return InvalidIDError{ID: id}
	}
	return nil
}

// Set stores def under id. Replacing an existing id keeps its original position.
func (r *Registry) Set(id string, def *Definition) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if def == nil {
		return ErrNilDefinition
	}
	if _, exists := r.defs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.defs[id] = def
	return nil
}

// MustSet is Set that panics on error.
// Useful in tests and static bundle setup where a bad id is a programming error.
func (r *Registry) MustSet(id string, def *Definition) *Definition {
	if err := r.Set(id, def); err != nil {
		panic(err)
	}
	return def
}

// Has reports whether a definition exists for id.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// Get returns the definition for id.
//
// Callers are expected to check Has first; a missing id is an error.
func (r *Registry) Get(id string) (*Definition, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	def, ok := r.defs[id]
	if !ok {
		return nil, ServiceNotFoundError{ID: id}
	}
	return def, nil
}

// Remove deletes the definition for id. It reports whether anything was removed.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.defs[id]; !ok {
		return false
	}
	delete(r.defs, id)
	for i, cur := range r.order {
		if cur == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns all ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// FindTaggedServiceIDs returns the ids carrying tag, in registration order.
func (r *Registry) FindTaggedServiceIDs(tag string) []string {
	var out []string
	for _, id := range r.order {
		if r.defs[id].HasTag(tag) {
			out = append(out, id)
		}
	}
	return out
}

// FindTaggedSortedByPriority returns the ids carrying tag, highest priority
// first. Equal priorities keep registration order.
//
// Priority is the highest "priority" attribute among the service's tags named
// tag, default 0.
func (r *Registry) FindTaggedSortedByPriority(tag string) ([]string, error) {
	type entry struct {
		id       string
		priority int
	}

	ids := r.FindTaggedServiceIDs(tag)
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		p, err := r.defs[id].priority(id, tag)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{id: id, priority: p})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out, nil
}
