package config

import (
	"os"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sghaida/formbundle/di"
	"gopkg.in/yaml.v3"
)

// Text codes attached to config errors.
const (
	ErrorInvalid    = "CONFIG_INVALID"
	ErrorReadFailed = "CONFIG_READ_FAILED"
)

// Document is a YAML container dump: the classes available in the
// environment plus the service definitions, in registration order.
type Document struct {
	Namespace string        `yaml:"namespace,omitempty"`
	Host      string        `yaml:"host,omitempty"`
	Classes   []ClassSpec   `yaml:"classes,omitempty"`
	Services  []ServiceSpec `yaml:"services"`
}

// ClassSpec declares one loadable class.
type ClassSpec struct {
	Name       string   `yaml:"name"`
	Parents    []string `yaml:"parents,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
}

// ServiceSpec is one service definition.
type ServiceSpec struct {
	ID    string     `yaml:"id"`
	Class string     `yaml:"class,omitempty"`
	Calls []CallSpec `yaml:"calls,omitempty"`
	Tags  []TagSpec  `yaml:"tags,omitempty"`
}

// CallSpec is one recorded method call. String arguments starting with "@"
// are service references, inside lists and maps too; "@@" escapes a literal "@".
type CallSpec struct {
	Method string `yaml:"method"`
	Args   []any  `yaml:"args,omitempty"`
}

// TagSpec is a tag name plus free-form attributes such as priority. The
// attributes are inlined, so none of them may be called "name".
type TagSpec struct {
	Name       string         `yaml:"name"`
	Attributes map[string]any `yaml:",inline"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		rich := goerrors.Wrap(err, goerrors.CategoryBadInput, "config: read "+path).
			WithTextCode(ErrorReadFailed)
		rich.WithMetadata(map[string]any{"path": path})
		return nil, rich
	}
	return Parse(raw)
}

// Parse decodes and validates a document.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "config: invalid yaml").
			WithTextCode(ErrorInvalid)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks ids, call methods and tag names.
func (d *Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Services))
	for i, svc := range d.Services {
		field := "services[" + strconv.Itoa(i) + "]"
		if err := di.ValidateID(svc.ID); err != nil {
			return invalid(field+".id", "invalid service id "+strconv.Quote(svc.ID))
		}
		if _, dup := seen[svc.ID]; dup {
			return invalid(field+".id", "duplicate service id "+strconv.Quote(svc.ID))
		}
		seen[svc.ID] = struct{}{}

		for j, call := range svc.Calls {
			if strings.TrimSpace(call.Method) == "" {
				return invalid(field+".calls["+strconv.Itoa(j)+"].method", "method is required")
			}
		}
		for j, tag := range svc.Tags {
			if strings.TrimSpace(tag.Name) == "" {
				return invalid(field+".tags["+strconv.Itoa(j)+"].name", "tag name is required")
			}
		}
	}
	for i, class := range d.Classes {
		if strings.TrimSpace(class.Name) == "" {
			return invalid("classes["+strconv.Itoa(i)+"].name", "class name is required")
		}
	}
	return nil
}

// Registry builds a registry holding the document's services in order.
func (d *Document) Registry() (*di.Registry, error) {
	reg := di.NewRegistry()
	for _, svc := range d.Services {
		def := di.NewDefinition(svc.Class)
		for _, call := range svc.Calls {
			def.AddMethodCall(call.Method, decodeArgs(call.Args)...)
		}
		for _, tag := range svc.Tags {
			def.AddTag(tag.Name, copyAttrs(tag.Attributes))
		}
		if err := reg.Set(svc.ID, def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Catalog builds a class catalog from the document's classes.
func (d *Document) Catalog() *di.Catalog {
	cat := di.NewCatalog()
	for _, c := range d.Classes {
		cat.Declare(di.ClassInfo{Name: c.Name, Parents: c.Parents, Implements: c.Implements})
	}
	return cat
}

// FromRegistry converts reg back into a document, keeping registration order.
func FromRegistry(reg *di.Registry) (*Document, error) {
	doc := &Document{Services: []ServiceSpec{}}
	for i, id := range reg.IDs() {
		def, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		svc := ServiceSpec{ID: id, Class: def.Class}
		for _, call := range def.Calls {
			svc.Calls = append(svc.Calls, CallSpec{Method: call.Method, Args: encodeArgs(call.Args)})
		}
		for j, tag := range def.Tags {
			if _, clash := tag.Attributes["name"]; clash {
				return nil, invalid(
					"services["+strconv.Itoa(i)+"].tags["+strconv.Itoa(j)+"]",
					"tag "+strconv.Quote(tag.Name)+" of service "+strconv.Quote(id)+" has a \"name\" attribute",
				)
			}
			svc.Tags = append(svc.Tags, TagSpec{Name: tag.Name, Attributes: copyAttrs(tag.Attributes)})
		}
		doc.Services = append(doc.Services, svc)
	}
	return doc, nil
}

// Dump serializes reg as a YAML document.
func Dump(reg *di.Registry) ([]byte, error) {
	doc, err := FromRegistry(reg)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func invalid(field, message string) error {
	rich := goerrors.New("config: "+field+": "+message, goerrors.CategoryBadInput).
		WithTextCode(ErrorInvalid)
	rich.WithMetadata(map[string]any{"field": field})
	return rich
}

func decodeArgs(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = decodeArg(a)
	}
	return out
}

func decodeArg(a any) any {
	switch v := a.(type) {
	case string:
		switch {
		case strings.HasPrefix(v, "@@"):
			return v[1:]
		case strings.HasPrefix(v, "@") && len(v) > 1:
			return di.Ref(v[1:])
		}
		return v
	case []any:
		return decodeArgs(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = decodeArg(item)
		}
		return out
	default:
		return a
	}
}

func encodeArgs(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = encodeArg(a)
	}
	return out
}

func encodeArg(a any) any {
	switch v := a.(type) {
	case di.Reference:
		return "@" + v.ID
	case string:
		if strings.HasPrefix(v, "@") {
			return "@" + v
		}
		return v
	case []any:
		return encodeArgs(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = encodeArg(item)
		}
		return out
	default:
		return a
	}
}

func copyAttrs(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
