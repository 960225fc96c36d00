package di

// ClassCatalog answers questions about the classes available at build time.
//
// It is queried by compiler passes, never mutated by them.
type ClassCatalog interface {
	// ClassExists reports whether class is loadable in the current environment.
	ClassExists(class string) bool

	// Implements reports whether class is, extends, or implements capability.
	Implements(class, capability string) bool
}

// ClassInfo declares one class and the types it is compatible with.
type ClassInfo struct {
	Name       string
	Parents    []string
	Implements []string
}

// Catalog is an in-memory ClassCatalog.
//
// Capability sets are computed once per class on first query and cached;
// declaring a new class clears the cache.
type Catalog struct {
	classes map[string]ClassInfo
	caps    map[string]map[string]struct{}
}

var _ ClassCatalog = (*Catalog)(nil)

// NewCatalog returns a catalog that knows the given classes.
func NewCatalog(classes ...ClassInfo) *Catalog {
	c := &Catalog{classes: map[string]ClassInfo{}}
	for _, info := range classes {
		c.Declare(info)
	}
	return c
}

// Declare adds or replaces a class and returns the catalog for chaining.
func (c *Catalog) Declare(info ClassInfo) *Catalog {
	if info.Name == "" {
		return c
	}
	c.classes[info.Name] = info
	c.caps = nil
	return c
}

// Classes returns the declared class names in no particular order.
func (c *Catalog) Classes() []string {
	out := make([]string, 0, len(c.classes))
	for name := range c.classes {
		out = append(out, name)
	}
	return out
}

// ClassExists implements ClassCatalog.
func (c *Catalog) ClassExists(class string) bool {
	if c == nil {
		return false
	}
	_, ok := c.classes[class]
	return ok
}

// Implements implements ClassCatalog.
//
// Unknown classes implement nothing, not even themselves.
func (c *Catalog) Implements(class, capability string) bool {
	if c == nil || !c.ClassExists(class) {
		return false
	}
	_, ok := c.capabilities(class)[capability]
	return ok
}

func (c *Catalog) capabilities(class string) map[string]struct{} {
	if c.caps == nil {
		c.caps = map[string]map[string]struct{}{}
	}
	if set, ok := c.caps[class]; ok {
		return set
	}

	set := map[string]struct{}{}
	var walk func(name string)
	walk = func(name string) {
		if _, seen := set[name]; seen {
			return
		}
		set[name] = struct{}{}
		info, ok := c.classes[name]
		if !ok {
			return
		}
		for _, p := range info.Parents {
			walk(p)
		}
		for _, i := range info.Implements {
			walk(i)
		}
	}
	walk(class)

	c.caps[class] = set
	return set
}
