package form

import (
	"github.com/sghaida/formbundle/compiler"
	"github.com/sghaida/formbundle/di"
)

// BundlePassPriority is the priority of DoctrineAwarePass inside BeforeOptimization.
const BundlePassPriority = 1

// Bundle hooks the form integration into a compiler pipeline.
type Bundle struct {
	Catalog di.ClassCatalog
	Options Options
	Logger  compiler.Logger
}

// Build registers DoctrineAwarePass so it runs before optimization.
func (b Bundle) Build(p *compiler.Pipeline) {
	pass := NewDoctrineAwarePass(b.Catalog, WithOptions(b.Options), WithLogger(b.Logger))
	p.AddPass(pass, compiler.BeforeOptimization, BundlePassPriority)
}
