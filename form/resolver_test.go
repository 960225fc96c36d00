package form_test

import (
	"testing"

	"github.com/sghaida/formbundle/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TargetObjectResolver keeps insertion order and replaces by interface
func TestTargetObjectResolver(t *testing.T) {
	t.Parallel()

	r := form.NewTargetObjectResolver()
	r.AddResolveTargetObject(`App\UserInterface`, `App\User`)
	r.AddResolveTargetObject(`App\GroupInterface`, `App\Group`)
	r.AddResolveTargetObject(`App\UserInterface`, `App\Admin`)

	assert.Equal(t, []form.Mapping{
		{Interface: `App\UserInterface`, Implementation: `App\Admin`},
		{Interface: `App\GroupInterface`, Implementation: `App\Group`},
	}, r.Mappings())

	assert.Equal(t, `App\Admin`, r.Resolve(`App\UserInterface`))
	assert.Equal(t, `App\Unmapped`, r.Resolve(`App\Unmapped`))

	var nilResolver *form.TargetObjectResolver
	assert.Equal(t, "X", nilResolver.Resolve("X"))
}

// EntityResolveTargetExtension rewrites only the class option
func TestEntityResolveTargetExtension_ResolveOptions(t *testing.T) {
	t.Parallel()

	ext := &form.EntityResolveTargetExtension{Vendor: "symfony"}
	in := map[string]any{"class": `App\UserInterface`, "multiple": true}

	// no resolver attached: unchanged
	assert.Equal(t, in, ext.ResolveOptions(in))
	assert.Nil(t, ext.TargetObjectResolver())

	r := form.NewTargetObjectResolver()
	r.AddResolveTargetObject(`App\UserInterface`, `App\User`)
	ext.SetTargetObjectResolver(r)

	out := ext.ResolveOptions(in)
	assert.Equal(t, `App\User`, out["class"])
	assert.Equal(t, true, out["multiple"])
	assert.Equal(t, `App\UserInterface`, in["class"], "input must not be mutated")
}

// Binders reject wrong targets and arguments
func TestBinders_Errors(t *testing.T) {
	t.Parallel()

	binders := form.Binders()
	add := binders[form.MethodAddResolveTargetObject]
	set := binders[form.MethodSetTargetObjectResolver]
	require.NotNil(t, add)
	require.NotNil(t, set)

	r := form.NewTargetObjectResolver()

	assert.Error(t, add(struct{}{}, []any{"a", "b"}))
	assert.Error(t, add(r, []any{"a"}))
	assert.Error(t, add(r, []any{"a", 1}))
	require.NoError(t, add(r, []any{"a", "b"}))
	assert.Equal(t, "b", r.Resolve("a"))

	aware := &form.AwareType{}
	assert.Error(t, set(struct{}{}, []any{r}))
	assert.Error(t, set(aware, nil))
	assert.Error(t, set(aware, []any{"not a resolver"}))
	require.NoError(t, set(aware, []any{r}))
	assert.Same(t, r, aware.TargetObjectResolver())
}
