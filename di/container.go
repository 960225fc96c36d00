package di

import (
	"reflect"
	"strconv"
)

// Factory constructs a bare instance for a class. Method calls are applied afterwards.
type Factory func() any

// Binder applies one recorded method call to a constructed instance.
//
// args have already been resolved: every Reference is replaced by the
// referenced instance.
type Binder func(target any, args []any) error

// WrongTypeError is returned by GetAs when a service exists but is of a different type.
type WrongTypeError struct {
	// ID is the service id requested.
	ID string

	// GotType is reflect.TypeOf(raw).String() for the instance.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: di: service "mailer" has wrong type (*app.Logger)
	return "di: service " + strconv.Quote(e.ID) + " has wrong type (" + e.GotType + ")"
}

// Container instantiates definitions from a Registry and replays their calls.
//
// It exists to exercise compiled registries: there is no scoping, no
// lifecycle, and no autowiring. Every service is shared.
//
// Expected usage:
//
//	c := di.NewContainer(reg).
//		Provide("App\\Mailer", func() any { return &Mailer{} }).
//		Bind("setLogger", setLogger)
//	mailer, err := di.GetAs[*Mailer](c, "mailer")
type Container struct {
	reg       *Registry
	factories map[string]Factory
	binders   map[string]Binder
	instances map[string]any
	building  []string
}

// NewContainer returns a container over reg.
func NewContainer(reg *Registry) *Container {
	return &Container{
		reg:       reg,
		factories: map[string]Factory{},
		binders:   map[string]Binder{},
		instances: map[string]any{},
	}
}

// Provide registers the factory for class and returns the container for chaining.
func (c *Container) Provide(class string, f Factory) *Container {
	c.factories[class] = f
	return c
}

// ProvideAll registers every factory in m.
func (c *Container) ProvideAll(m map[string]Factory) *Container {
	for class, f := range m {
		c.Provide(class, f)
	}
	return c
}

// Bind registers the binder for method and returns the container for chaining.
func (c *Container) Bind(method string, b Binder) *Container {
	c.binders[method] = b
	return c
}

// BindAll registers every binder in m.
func (c *Container) BindAll(m map[string]Binder) *Container {
	for method, b := range m {
		c.Bind(method, b)
	}
	return c
}

// Get returns the shared instance for id, building it on first use.
func (c *Container) Get(id string) (any, error) {
	if c.reg == nil {
		return nil, ErrNilRegistry
	}
	if v, ok := c.instances[id]; ok {
		return v, nil
	}
	for _, cur := range c.building {
		if cur == id {
			path := append(append([]string{}, c.building...), id)
			return nil, CircularReferenceError{Path: path}
		}
	}

	def, err := c.reg.Get(id)
	if err != nil {
		return nil, err
	}

	c.building = append(c.building, id)
	defer func() { c.building = c.building[:len(c.building)-1] }()

	f, ok := c.factories[def.Class]
	if !ok || f == nil {
		return nil, MissingFactoryError{ID: id, Class: def.Class}
	}
	inst := f()

	for _, call := range def.Calls {
		b, ok := c.binders[call.Method]
		if !ok || b == nil {
			return nil, MissingBinderError{ID: id, Method: call.Method}
		}
		args, err := c.resolveArgs(call.Args)
		if err != nil {
			return nil, err
		}
		if err := b(inst, args); err != nil {
			return nil, CallError{ID: id, Method: call.Method, Err: err}
		}
	}

	c.instances[id] = inst
	return inst, nil
}

// MustGet returns the instance or panics.
// Useful in tests where a broken graph should fail fast.
func (c *Container) MustGet(id string) any {
	v, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return v
}

// GetAs returns the instance for id typed as T.
func GetAs[T any](c *Container, id string) (T, error) {
	var zero T
	raw, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		got := "<nil>"
		if raw != nil {
			got = reflect.TypeOf(raw).String()
		}
		return zero, WrongTypeError{ID: id, GotType: got}
	}
	return v, nil
}

func (c *Container) resolveArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := c.resolve(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *Container) resolve(arg any) (any, error) {
	switch v := arg.(type) {
	case Reference:
		return c.Get(v.ID)
	case []any:
		return c.resolveArgs(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			r, err := c.resolve(item)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	default:
		return arg, nil
	}
}
