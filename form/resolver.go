package form

import (
	"errors"
	"fmt"

	"github.com/sghaida/formbundle/di"
)

// ObjectResolver maps an interface or abstract class to the concrete class
// configured for it.
type ObjectResolver interface {
	Resolve(class string) string
}

// TargetObjectResolverAware is implemented by form types that accept a resolver.
type TargetObjectResolverAware interface {
	SetTargetObjectResolver(r ObjectResolver)
}

// Mapping is one interface -> implementation pair.
type Mapping struct {
	Interface      string
	Implementation string
}

// TargetObjectResolver is the runtime resolver built from the
// addResolveTargetObject calls of the local resolver definition.
type TargetObjectResolver struct {
	mappings []Mapping
	index    map[string]int
}

var _ ObjectResolver = (*TargetObjectResolver)(nil)

// NewTargetObjectResolver returns an empty resolver.
func NewTargetObjectResolver() *TargetObjectResolver {
	return &TargetObjectResolver{index: map[string]int{}}
}

// AddResolveTargetObject maps iface to impl. A later mapping for the same
// interface replaces the earlier one but keeps its position.
func (r *TargetObjectResolver) AddResolveTargetObject(iface, impl string) {
	if i, ok := r.index[iface]; ok {
		r.mappings[i].Implementation = impl
		return
	}
	r.index[iface] = len(r.mappings)
	r.mappings = append(r.mappings, Mapping{Interface: iface, Implementation: impl})
}

// Resolve returns the implementation mapped to class, or class itself.
func (r *TargetObjectResolver) Resolve(class string) string {
	if r == nil {
		return class
	}
	if i, ok := r.index[class]; ok {
		return r.mappings[i].Implementation
	}
	return class
}

// Mappings returns the configured pairs in insertion order.
func (r *TargetObjectResolver) Mappings() []Mapping {
	out := make([]Mapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// AwareType is embedded by form types that accept a resolver.
type AwareType struct {
	resolver ObjectResolver
}

// SetTargetObjectResolver implements TargetObjectResolverAware.
func (t *AwareType) SetTargetObjectResolver(r ObjectResolver) { t.resolver = r }

// TargetObjectResolver returns the attached resolver, or nil.
func (t *AwareType) TargetObjectResolver() ObjectResolver { return t.resolver }

// ResolveClass resolves class through the attached resolver.
// Without a resolver the class is returned unchanged.
func (t *AwareType) ResolveClass(class string) string {
	if t.resolver == nil {
		return class
	}
	return t.resolver.Resolve(class)
}

// EntityResolveTargetExtension is the runtime side of the
// "<vendor>_entity_resolve_target" type extensions: it rewrites the "class"
// option of an entity form type through the resolver.
type EntityResolveTargetExtension struct {
	AwareType
	Vendor string
}

// ResolveOptions returns a copy of opts with "class" resolved.
func (e *EntityResolveTargetExtension) ResolveOptions(opts map[string]any) map[string]any {
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	if class, ok := out["class"].(string); ok {
		out["class"] = e.ResolveClass(class)
	}
	return out
}

var (
	errNotResolver    = errors.New("form: target is not a *TargetObjectResolver")
	errNotAware       = errors.New("form: target does not accept a target object resolver")
	errBadResolverArg = errors.New("form: argument is not an ObjectResolver")
)

// Binders returns the di.Binder table for the calls this bundle records.
func Binders() map[string]di.Binder {
	return map[string]di.Binder{
		MethodAddResolveTargetObject: func(target any, args []any) error {
			r, ok := target.(*TargetObjectResolver)
			if !ok {
				return errNotResolver
			}
			if len(args) != 2 {
				return fmt.Errorf("form: %s expects 2 arguments, got %d", MethodAddResolveTargetObject, len(args))
			}
			iface, ok1 := args[0].(string)
			impl, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return fmt.Errorf("form: %s expects string arguments, got %T and %T", MethodAddResolveTargetObject, args[0], args[1])
			}
			r.AddResolveTargetObject(iface, impl)
			return nil
		},
		MethodSetTargetObjectResolver: func(target any, args []any) error {
			aware, ok := target.(TargetObjectResolverAware)
			if !ok {
				return errNotAware
			}
			if len(args) != 1 {
				return fmt.Errorf("form: %s expects 1 argument, got %d", MethodSetTargetObjectResolver, len(args))
			}
			r, ok := args[0].(ObjectResolver)
			if !ok {
				return errBadResolverArg
			}
			aware.SetTargetObjectResolver(r)
			return nil
		},
	}
}
