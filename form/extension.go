package form

import "github.com/sghaida/formbundle/di"

// Classes of the resolve-target type extensions, one per entity type marker.
const (
	SymfonyEntityResolveTargetExtensionClass = `Klipper\Component\Form\Doctrine\Extension\SymfonyEntityResolveTargetTypeExtension`
	KlipperEntityResolveTargetExtensionClass = `Klipper\Component\Form\Doctrine\Extension\KlipperEntityResolveTargetTypeExtension`
)

var extensionClasses = map[string]string{
	SymfonyEntityType: SymfonyEntityResolveTargetExtensionClass,
	KlipperEntityType: KlipperEntityResolveTargetExtensionClass,
}

// Extension registers the bundle's default service definitions.
type Extension struct {
	Options Options
}

// Load adds the local resolver and the resolve-target type extensions to reg.
// Ids that are already defined are left untouched.
func (e Extension) Load(reg *di.Registry) error {
	if reg == nil {
		return di.ErrNilRegistry
	}

	if id := e.Options.ResolverID(); !reg.Has(id) {
		if err := reg.Set(id, di.NewDefinition(TargetObjectResolverClass)); err != nil {
			return err
		}
	}

	for _, marker := range EntityTypeMarkers {
		id, err := e.Options.TypeExtensionID(marker)
		if err != nil {
			return err
		}
		if reg.Has(id) {
			continue
		}
		def := di.NewDefinition(extensionClasses[marker]).
			AddTag(TagTypeExtension, map[string]any{"extended_type": marker})
		if err := reg.Set(id, def); err != nil {
			return err
		}
	}
	return nil
}

// Declare adds the classes shipped with the bundle to cat. The entity type
// markers are not declared: their presence depends on the environment.
func (Extension) Declare(cat *di.Catalog) *di.Catalog {
	cat.Declare(di.ClassInfo{Name: DoctrineAwareInterface})
	cat.Declare(di.ClassInfo{Name: TargetObjectResolverClass})
	for _, class := range extensionClasses {
		cat.Declare(di.ClassInfo{Name: class, Implements: []string{DoctrineAwareInterface}})
	}
	return cat
}

// Factories returns the di.Factory table for the classes shipped with the bundle.
func Factories() map[string]di.Factory {
	return map[string]di.Factory{
		TargetObjectResolverClass: func() any { return NewTargetObjectResolver() },
		SymfonyEntityResolveTargetExtensionClass: func() any {
			return &EntityResolveTargetExtension{Vendor: "symfony"}
		},
		KlipperEntityResolveTargetExtensionClass: func() any {
			return &EntityResolveTargetExtension{Vendor: "klipper"}
		},
	}
}
