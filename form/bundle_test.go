package form_test

import (
	"testing"

	"github.com/sghaida/formbundle/compiler"
	"github.com/sghaida/formbundle/di"
	"github.com/sghaida/formbundle/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskType struct {
	form.AwareType
}

// Bundle registers exactly one pass, ahead of lower-priority before-optimization passes
func TestBundle_BuildOrdering(t *testing.T) {
	t.Parallel()

	var ran []string
	p := compiler.NewPipeline().
		AddPass(compiler.PassFunc(func(*di.Registry) error { ran = append(ran, "zero"); return nil }), compiler.BeforeOptimization, 0).
		AddPass(compiler.PassFunc(func(*di.Registry) error { ran = append(ran, "optimize"); return nil }), compiler.Optimize, 10)

	form.Bundle{Catalog: newCatalog()}.Build(p)

	passes := p.Passes()
	require.Len(t, passes, 3)
	_, ok := passes[0].(*form.DoctrineAwarePass)
	assert.True(t, ok, "bundle pass must run first")

	reg := newRegistry()
	require.NoError(t, p.Compile(reg))
	assert.Equal(t, []string{"zero", "optimize"}, ran)
}

// Extension.Load is idempotent and keeps user overrides
func TestExtension_Load(t *testing.T) {
	t.Parallel()

	reg := di.NewRegistry()
	reg.MustSet(klipperExtID, di.NewDefinition(`App\CustomExtension`))

	ext := form.Extension{}
	require.NoError(t, ext.Load(reg))
	require.NoError(t, ext.Load(reg))

	assert.Equal(t, []string{klipperExtID, resolverID, symfonyExtID}, reg.IDs())

	custom, _ := reg.Get(klipperExtID)
	assert.Equal(t, `App\CustomExtension`, custom.Class)

	sym, _ := reg.Get(symfonyExtID)
	assert.Equal(t, form.SymfonyEntityResolveTargetExtensionClass, sym.Class)
	assert.Equal(t, []map[string]any{{"extended_type": form.SymfonyEntityType}}, sym.TagAttributes(form.TagTypeExtension))

	assert.ErrorIs(t, ext.Load(nil), di.ErrNilRegistry)
}

// Full build: load defaults, compile, then materialize live objects
func TestBundle_EndToEnd(t *testing.T) {
	t.Parallel()

	ext := form.Extension{}
	cat := ext.Declare(newCatalog(form.SymfonyEntityType))
	cat.Declare(di.ClassInfo{Name: `App\Form\TaskType`, Implements: []string{form.DoctrineAwareInterface}})

	reg := di.NewRegistry()
	require.NoError(t, ext.Load(reg))
	reg.MustSet(externalResolverID, di.NewDefinition("Listener").
		AddMethodCall(form.MethodAddResolveTargetEntity, `App\UserInterface`, `App\User`))
	reg.MustSet("app.form.task", di.NewDefinition(`App\Form\TaskType`).AddTag(form.TagType, nil))

	p := compiler.NewPipeline().AddPass(compiler.CheckReferencesPass{}, compiler.AfterRemoving, 0)
	form.Bundle{Catalog: cat}.Build(p)
	require.NoError(t, p.Compile(reg))

	// klipper entity type is not installed
	assert.False(t, reg.Has(klipperExtID))
	assert.True(t, reg.Has(symfonyExtID))

	c := di.NewContainer(reg).
		ProvideAll(form.Factories()).
		Provide(`App\Form\TaskType`, func() any { return &taskType{} }).
		BindAll(form.Binders())

	resolver, err := di.GetAs[*form.TargetObjectResolver](c, resolverID)
	require.NoError(t, err)
	assert.Equal(t, `App\User`, resolver.Resolve(`App\UserInterface`))

	task, err := di.GetAs[*taskType](c, "app.form.task")
	require.NoError(t, err)
	assert.Same(t, resolver, task.TargetObjectResolver())

	symExt, err := di.GetAs[*form.EntityResolveTargetExtension](c, symfonyExtID)
	require.NoError(t, err)
	assert.Equal(t, "symfony", symExt.Vendor)
	assert.Equal(t, `App\User`, symExt.ResolveOptions(map[string]any{"class": `App\UserInterface`})["class"])
}
