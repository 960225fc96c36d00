package compiler_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sghaida/formbundle/compiler"
	"github.com/sghaida/formbundle/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckReferences_AllResolved verifies a consistent graph passes.
func TestCheckReferences_AllResolved(t *testing.T) {
	t.Parallel()

	reg := di.NewRegistry()
	reg.MustSet("logger", di.NewDefinition("Logger"))
	reg.MustSet("mailer", di.NewDefinition("Mailer").
		AddMethodCall("setLogger", di.Ref("logger")).
		AddMethodCall("setHandlers", []any{di.Ref("logger"), "literal"}))

	assert.NoError(t, compiler.CheckReferencesPass{}.Process(reg))
	assert.Equal(t, "check_references", compiler.CheckReferencesPass{}.Name())
}

// TestCheckReferences_Broken verifies direct and nested dangling references are reported.
func TestCheckReferences_Broken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []any
	}{
		{name: "direct", args: []any{di.Ref("ghost")}},
		{name: "nested", args: []any{[]any{"x", di.Ref("ghost")}}},
		{name: "in map", args: []any{map[string]any{"a": "x", "b": di.Ref("ghost")}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg := di.NewRegistry()
			reg.MustSet("mailer", di.NewDefinition("Mailer").AddMethodCall("setLogger", tc.args...))

			err := compiler.CheckReferencesPass{}.Process(reg)
			require.Error(t, err)

			var rich *goerrors.Error
			require.True(t, goerrors.As(err, &rich))
			assert.Equal(t, goerrors.CategoryNotFound, rich.Category)
			assert.Equal(t, compiler.ErrorBrokenReference, rich.TextCode)
		})
	}
}
