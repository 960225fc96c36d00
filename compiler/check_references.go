package compiler

import (
	"sort"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sghaida/formbundle/di"
)

// CheckReferencesPass fails the build when a method call argument, or a list
// or map nested in one, references a service that is not registered. Register it in AfterRemoving so it sees
// the graph after every pruning pass.
type CheckReferencesPass struct{}

var (
	_ Pass  = CheckReferencesPass{}
	_ Named = CheckReferencesPass{}
)

// Name implements Named.
func (CheckReferencesPass) Name() string { return "check_references" }

// Process implements Pass.
func (CheckReferencesPass) Process(reg *di.Registry) error {
	for _, id := range reg.IDs() {
		def, err := reg.Get(id)
		if err != nil {
			return err
		}
		for _, call := range def.Calls {
			if missing, ok := firstMissing(reg, call.Args); ok {
				rich := goerrors.New(
					"compiler: service \""+id+"\" references missing service \""+missing+"\" in call "+call.Method,
					goerrors.CategoryNotFound,
				).WithTextCode(ErrorBrokenReference)
				rich.WithMetadata(map[string]any{
					"service":   id,
					"method":    call.Method,
					"reference": missing,
				})
				return rich
			}
		}
	}
	return nil
}

func firstMissing(reg *di.Registry, args []any) (string, bool) {
	for _, a := range args {
		switch v := a.(type) {
		case di.Reference:
			if !reg.Has(v.ID) {
				return v.ID, true
			}
		case []any:
			if id, ok := firstMissing(reg, v); ok {
				return id, true
			}
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if id, ok := firstMissing(reg, []any{v[k]}); ok {
					return id, true
				}
			}
		}
	}
	return "", false
}
