// Package form integrates the optional ORM target-entity resolution into
// form types at container build time.
//
// Bundle.Build registers DoctrineAwarePass in the BeforeOptimization phase.
// The pass copies the ORM's resolve-target-entity mappings onto the local
// target object resolver, prunes the entity type extensions whose entity
// types are not installed, and attaches the resolver to every form type or
// type extension that implements DoctrineAwareInterface.
//
// Extension provides the default definitions, Factories and Binders let a
// di.Container materialize a compiled registry into live objects.
package form
