package compiler

import (
	"fmt"
	"sort"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/sghaida/formbundle/di"
)

// Logger is the logging contract used by the pipeline and passes.
type Logger = glog.Logger

// Text codes attached to pipeline errors.
const (
	ErrorPassFailed      = "COMPILER_PASS_FAILED"
	ErrorBrokenReference = "COMPILER_BROKEN_REFERENCE"
	ErrorNilRegistry     = "COMPILER_NIL_REGISTRY"
)

// Pass mutates a registry during a build.
type Pass interface {
	Process(reg *di.Registry) error
}

// PassFunc adapts a function to Pass.
type PassFunc func(reg *di.Registry) error

// Process implements Pass.
func (f PassFunc) Process(reg *di.Registry) error { return f(reg) }

// Phase orders groups of passes. Phases run in declaration order.
type Phase int

const (
	BeforeOptimization Phase = iota
	Optimize
	BeforeRemoving
	Remove
	AfterRemoving
)

// String makes Phase satisfy the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case BeforeOptimization:
		return "before_optimization"
	case Optimize:
		return "optimize"
	case BeforeRemoving:
		return "before_removing"
	case Remove:
		return "remove"
	case AfterRemoving:
		return "after_removing"
	default:
		return "unknown"
	}
}

type entry struct {
	pass     Pass
	phase    Phase
	priority int
	seq      int
}

// Pipeline runs registered passes over a registry once per build.
type Pipeline struct {
	entries []entry
	logger  Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger. nil keeps the no-op logger.
func WithLogger(l Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline returns an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{logger: glog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// AddPass registers pass in phase. Higher priority runs first within a phase;
// equal priorities run in the order they were added.
func (p *Pipeline) AddPass(pass Pass, phase Phase, priority int) *Pipeline {
	if pass == nil {
		return p
	}
	p.entries = append(p.entries, entry{pass: pass, phase: phase, priority: priority, seq: len(p.entries)})
	return p
}

// Passes returns the registered passes in execution order.
func (p *Pipeline) Passes() []Pass {
	ordered := p.ordered()
	out := make([]Pass, len(ordered))
	for i, e := range ordered {
		out[i] = e.pass
	}
	return out
}

// Compile runs every pass in order and stops at the first error.
func (p *Pipeline) Compile(reg *di.Registry) error {
	if reg == nil {
		return goerrors.New("compiler: nil registry", goerrors.CategoryInternal).
			WithTextCode(ErrorNilRegistry)
	}

	for _, e := range p.ordered() {
		name := passName(e.pass)
		p.logger.Debug("running compiler pass", "pass", name, "phase", e.phase.String(), "priority", e.priority)

		if err := e.pass.Process(reg); err != nil {
			p.logger.Error("compiler pass failed", "pass", name, "phase", e.phase.String(), "error", err)
			rich := goerrors.Wrap(err, goerrors.CategoryInternal, "compiler: pass "+name+" failed").
				WithTextCode(ErrorPassFailed)
			rich.WithMetadata(map[string]any{
				"pass":  name,
				"phase": e.phase.String(),
			})
			return rich
		}
	}

	p.logger.Debug("compiled registry", "services", reg.Len())
	return nil
}

func (p *Pipeline) ordered() []entry {
	out := make([]entry, len(p.entries))
	copy(out, p.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].phase != out[j].phase {
			return out[i].phase < out[j].phase
		}
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Named passes report their own name in logs and errors.
type Named interface {
	Name() string
}

func passName(pass Pass) string {
	if n, ok := pass.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", pass)
}
