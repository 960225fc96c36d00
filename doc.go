// Package formbundle wires an optional ORM target-entity resolver into form
// types at container build time.
//
// The repository is organised as a small set of explicit building blocks:
//
//   - di: service definitions, the ordered Registry, the ClassCatalog and a
//     call-replaying Container
//   - compiler: phased, priority-ordered compiler passes
//   - form: the bundle, its default definitions and DoctrineAwarePass
//   - config: YAML container dumps
//   - cmd/formpass: CLI that compiles a dump through the bundle
//
// Everything runs once, synchronously, over a registry passed in explicitly.
// There is no global container.
//
// Package formbundle See subpackages.
package formbundle
