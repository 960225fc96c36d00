package di

import "strconv"

// Reference points at another service definition by id.
//
// References are stored as method call arguments and resolved by the
// Container when the owning definition is instantiated.
type Reference struct {
	ID string
}

// Ref builds a Reference to id.
func Ref(id string) Reference { return Reference{ID: id} }

// String implements fmt.Stringer.
func (r Reference) String() string { return "@" + r.ID }

// MethodCall is a deferred call recorded on a Definition.
//
// Calls are replayed in the order they were added.
type MethodCall struct {
	Method string
	Args   []any
}

// Tag marks a definition for discovery by tag name.
//
// Attributes are free-form; "priority" is read by FindTaggedSortedByPriority.
type Tag struct {
	Name       string
	Attributes map[string]any
}

// Definition is a declarative description of a single service.
type Definition struct {
	Class string
	Calls []MethodCall
	Tags  []Tag
}

// NewDefinition returns an empty definition for class.
func NewDefinition(class string) *Definition {
	return &Definition{Class: class}
}

// AddMethodCall appends a call and returns the definition for chaining.
func (d *Definition) AddMethodCall(method string, args ...any) *Definition {
	cp := make([]any, len(args))
	copy(cp, args)
	d.Calls = append(d.Calls, MethodCall{Method: method, Args: cp})
	return d
}

// HasMethodCall reports whether a call named method was recorded.
// Arguments are not compared.
func (d *Definition) HasMethodCall(method string) bool {
	for _, c := range d.Calls {
		if c.Method == method {
			return true
		}
	}
	return false
}

// MethodCalls returns a copy of the recorded calls.
func (d *Definition) MethodCalls() []MethodCall {
	out := make([]MethodCall, len(d.Calls))
	copy(out, d.Calls)
	return out
}

// AddTag appends a tag and returns the definition for chaining.
func (d *Definition) AddTag(name string, attrs map[string]any) *Definition {
	d.Tags = append(d.Tags, Tag{Name: name, Attributes: attrs})
	return d
}

// HasTag reports whether the definition carries at least one tag named name.
func (d *Definition) HasTag(name string) bool {
	for _, t := range d.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagAttributes returns the attributes of every tag named name, in order.
func (d *Definition) TagAttributes(name string) []map[string]any {
	var out []map[string]any
	for _, t := range d.Tags {
		if t.Name == name {
			out = append(out, t.Attributes)
		}
	}
	return out
}

// Clone returns a deep copy of the call and tag lists.
//
// Argument values themselves are shared.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	cp := &Definition{Class: d.Class}
	if len(d.Calls) > 0 {
		cp.Calls = make([]MethodCall, len(d.Calls))
		for i, c := range d.Calls {
			args := make([]any, len(c.Args))
			copy(args, c.Args)
			cp.Calls[i] = MethodCall{Method: c.Method, Args: args}
		}
	}
	if len(d.Tags) > 0 {
		cp.Tags = make([]Tag, len(d.Tags))
		for i, t := range d.Tags {
			var attrs map[string]any
			if t.Attributes != nil {
				attrs = make(map[string]any, len(t.Attributes))
				for k, v := range t.Attributes {
					attrs[k] = v
				}
			}
			cp.Tags[i] = Tag{Name: t.Name, Attributes: attrs}
		}
	}
	return cp
}

// priority returns the highest "priority" attribute among the tags named
// name, so a service tagged several times sorts at its strongest occurrence.
//
// Missing attributes default to 0. Integral floats and numeric strings are
// accepted since decoded config may produce either.
func (d *Definition) priority(id, name string) (int, error) {
	best, found := 0, false
	for _, t := range d.Tags {
		if t.Name != name {
			continue
		}
		p, err := tagPriority(id, name, t.Attributes["priority"])
		if err != nil {
			return 0, err
		}
		if !found || p > best {
			best, found = p, true
		}
	}
	return best, nil
}

func tagPriority(id, name string, raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, nil
		}
	}
	return 0, InvalidPriorityError{ID: id, Tag: name, Value: raw}
}
