package form

import (
	glog "github.com/goliatone/go-logger/glog"
	"github.com/sghaida/formbundle/compiler"
	"github.com/sghaida/formbundle/di"
)

// DoctrineAwarePass wires the target object resolver into doctrine-aware
// form types and removes the entity integrations whose classes are missing.
//
// Process runs three steps in a fixed order:
//
//  1. copy every addResolveTargetEntity call of the ORM listener onto the
//     local resolver as addResolveTargetObject
//  2. remove the resolve-target type extension of every entity type marker
//     that is not loadable
//  3. for form.type then form.type_extension services, highest priority
//     first, append setTargetObjectResolver(@resolver) to each service whose
//     class implements DoctrineAwareInterface and has no such call yet
//
// Pruning happens before tag iteration so removed services never receive the
// resolver.
type DoctrineAwarePass struct {
	catalog di.ClassCatalog
	opts    Options
	logger  compiler.Logger
}

var (
	_ compiler.Pass  = (*DoctrineAwarePass)(nil)
	_ compiler.Named = (*DoctrineAwarePass)(nil)
)

// PassOption configures a DoctrineAwarePass.
type PassOption func(*DoctrineAwarePass)

// WithOptions overrides the service id prefixes.
func WithOptions(o Options) PassOption {
	return func(p *DoctrineAwarePass) { p.opts = o }
}

// WithLogger sets the pass logger. nil keeps the no-op logger.
func WithLogger(l compiler.Logger) PassOption {
	return func(p *DoctrineAwarePass) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewDoctrineAwarePass returns the pass for the classes known to catalog.
func NewDoctrineAwarePass(catalog di.ClassCatalog, opts ...PassOption) *DoctrineAwarePass {
	p := &DoctrineAwarePass{catalog: catalog, logger: glog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Name implements compiler.Named.
func (p *DoctrineAwarePass) Name() string { return "form_type_doctrine_aware" }

// Process implements compiler.Pass.
func (p *DoctrineAwarePass) Process(reg *di.Registry) error {
	if reg == nil {
		return di.ErrNilRegistry
	}
	resolverID := p.opts.ResolverID()

	if err := p.buildResolverDefinition(reg, resolverID); err != nil {
		return err
	}
	if err := p.cleanEntityTypeExtensions(reg); err != nil {
		return err
	}

	for _, tag := range []string{TagType, TagTypeExtension} {
		ids, err := reg.FindTaggedSortedByPriority(tag)
		if err != nil {
			return err
		}
		for _, id := range ids {
			def, err := reg.Get(id)
			if err != nil {
				return err
			}
			if def.HasMethodCall(MethodSetTargetObjectResolver) || !p.isAware(def.Class) {
				continue
			}
			def.AddMethodCall(MethodSetTargetObjectResolver, di.Ref(resolverID))
			p.logger.Debug("attached target object resolver", "service", id, "tag", tag)
		}
	}
	return nil
}

func (p *DoctrineAwarePass) isAware(class string) bool {
	return p.catalog != nil && p.catalog.Implements(class, DoctrineAwareInterface)
}

// buildResolverDefinition mirrors the ORM's resolve-target-entity mappings
// onto the local resolver. A missing ORM listener is not an error.
func (p *DoctrineAwarePass) buildResolverDefinition(reg *di.Registry, resolverID string) error {
	externalID := p.opts.ExternalResolverID()
	if !reg.Has(externalID) {
		p.logger.Debug("orm resolve target listener not registered", "service", externalID)
		return nil
	}

	external, err := reg.Get(externalID)
	if err != nil {
		return err
	}
	resolver, err := reg.Get(resolverID)
	if err != nil {
		return err
	}

	copied := 0
	for _, call := range external.Calls {
		if call.Method != MethodAddResolveTargetEntity {
			continue
		}
		if len(call.Args) < 2 {
			p.logger.Warn("resolve target mapping has missing arguments, copying nil",
				"service", externalID, "method", call.Method, "args", len(call.Args))
		}
		resolver.AddMethodCall(MethodAddResolveTargetObject, argAt(call.Args, 0), argAt(call.Args, 1))
		copied++
	}
	p.logger.Debug("copied resolve target mappings", "from", externalID, "to", resolverID, "count", copied)
	return nil
}

// cleanEntityTypeExtensions removes the resolve-target type extension of
// every entity type marker that is not loadable.
func (p *DoctrineAwarePass) cleanEntityTypeExtensions(reg *di.Registry) error {
	for _, marker := range EntityTypeMarkers {
		if p.catalog != nil && p.catalog.ClassExists(marker) {
			continue
		}
		id, err := p.opts.TypeExtensionID(marker)
		if err != nil {
			return err
		}
		if err := di.ValidateID(id); err != nil {
			return err
		}
		if reg.Remove(id) {
			p.logger.Info("removed type extension for missing entity type", "service", id, "class", marker)
		}
	}
	return nil
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}
