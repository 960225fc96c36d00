// Package di provides the service-definition model that build-time compiler
// passes operate on.
//
// The package is split in three small pieces:
//
//   - Definition / MethodCall / Tag / Reference: a declarative description of
//     one service. Method calls are deferred and replayed in recorded order.
//
//   - Registry: an ordered id -> *Definition map with tag queries
//     (FindTaggedServiceIDs, FindTaggedSortedByPriority). Passes receive it
//     explicitly; there is no global container.
//
//   - ClassCatalog / Catalog: build-time facts about which classes exist and
//     which capabilities (parents, interfaces) they carry. Capability checks
//     are plain set lookups, not reflection.
//
// Container is a minimal replayer used to verify compiled registries: it
// instantiates definitions through registered factories and applies their
// calls through registered binders. It does not provide scopes, lifecycle
// hooks or autowiring.
//
// Errors are small typed structs (ServiceNotFoundError, InvalidIDError, ...)
// so callers can assert them with errors.As without string matching.
//
// Import
//
//	"github.com/sghaida/formbundle/di"
package di
