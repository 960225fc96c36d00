package form

import (
	"strconv"
	"strings"
)

// Tag and method names shared with the hosting container. They must match
// exactly for interoperability.
const (
	TagType          = "form.type"
	TagTypeExtension = "form.type_extension"

	MethodSetTargetObjectResolver = "setTargetObjectResolver"
	MethodAddResolveTargetEntity  = "addResolveTargetEntity"
	MethodAddResolveTargetObject  = "addResolveTargetObject"
)

// Class names the bundle knows about.
const (
	// DoctrineAwareInterface marks form types that accept a target object resolver.
	DoctrineAwareInterface = `Klipper\Component\Form\Doctrine\FormTypeDoctrineAwareInterface`

	// TargetObjectResolverClass is the class of the local resolver service.
	TargetObjectResolverClass = `Klipper\Component\Form\Doctrine\Resolver\TargetObjectResolver`

	SymfonyEntityType = `Symfony\Bridge\Doctrine\Form\Type\EntityType`
	KlipperEntityType = `Klipper\Component\Form\Doctrine\Type\EntityType`
)

// EntityTypeMarkers lists the optional entity form types. When one is not
// loadable, the matching resolve-target type extension is pruned.
var EntityTypeMarkers = []string{SymfonyEntityType, KlipperEntityType}

const (
	defaultNamespace = "klipper_form"
	defaultHost      = "doctrine"
)

// Options carries the service id prefixes. The zero value uses the defaults.
type Options struct {
	// Namespace prefixes the bundle's own service ids ("klipper_form").
	Namespace string

	// Host prefixes the ORM integration's service ids ("doctrine").
	Host string
}

func (o Options) namespace() string {
	if o.Namespace == "" {
		return defaultNamespace
	}
	return o.Namespace
}

func (o Options) host() string {
	if o.Host == "" {
		return defaultHost
	}
	return o.Host
}

// ResolverID is the id of the local target object resolver.
func (o Options) ResolverID() string {
	return o.namespace() + ".doctrine.target_object_resolver"
}

// ExternalResolverID is the id of the ORM's resolve-target-entity listener.
func (o Options) ExternalResolverID() string {
	return o.host() + ".orm.listeners.resolve_target_entity"
}

// TypeExtensionID derives the resolve-target type extension id for a marker class.
//
// The vendor token is the lowercased first namespace segment of marker:
// `Symfony\Bridge\...` -> "<namespace>.type_extension.symfony_entity_resolve_target".
func (o Options) TypeExtensionID(marker string) (string, error) {
	vendor, err := VendorToken(marker)
	if err != nil {
		return "", err
	}
	return o.namespace() + ".type_extension." + vendor + "_entity_resolve_target", nil
}

// InvalidClassNameError is returned for class names with no vendor segment.
type InvalidClassNameError struct{ Class string }

// Error implements the error interface.
func (e InvalidClassNameError) Error() string {
	// Example: form: class "\\EntityType" has no vendor segment
	return "form: class " + strconv.Quote(e.Class) + " has no vendor segment"
}

// VendorToken returns the lowercased first `\`-separated segment of class.
func VendorToken(class string) (string, error) {
	first, _, _ := strings.Cut(class, `\`)
	if strings.TrimSpace(first) == "" {
		return "", InvalidClassNameError{Class: class}
	}
	return strings.ToLower(first), nil
}
