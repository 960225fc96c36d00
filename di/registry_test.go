package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewRegistry / Set
// -----------------------------------------------------------------------------

// TestNewRegistry_Empty verifies NewRegistry initializes an empty registry.
func TestNewRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.defs)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.IDs())
}

// TestSet_StoresAndKeepsOrder verifies Set keeps first-registration order even on replace.
func TestSet_StoresAndKeepsOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Set("a", NewDefinition("A")))
	require.NoError(t, r.Set("b", NewDefinition("B")))
	require.NoError(t, r.Set("a", NewDefinition("A2")))

	assert.Equal(t, []string{"a", "b"}, r.IDs())

	def, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "A2", def.Class)
}

// TestSet_Errors verifies malformed ids and nil definitions are rejected.
func TestSet_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		id     string
		def    *Definition
		wantIs error
		wantID string
	}{
		{name: "empty id", id: "", def: NewDefinition("A"), wantID: ""},
		{name: "whitespace id", id: "bad id", def: NewDefinition("A"), wantID: "bad id"},
		{name: "nil definition", id: "ok", def: nil, wantIs: ErrNilDefinition},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := NewRegistry().Set(tc.id, tc.def)
			require.Error(t, err)

			if tc.wantIs != nil {
				assert.True(t, errors.Is(err, tc.wantIs))
				return
			}
			var invalid InvalidIDError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.wantID, invalid.ID)
		})
	}
}

// TestMustSet_Panics verifies MustSet panics on a malformed id.
func TestMustSet_Panics(t *testing.T) {
	t.Parallel()

	require.PanicsWithError(t, `di: invalid service id ""`, func() {
		NewRegistry().MustSet("", NewDefinition("A"))
	})
}

//
// -----------------------------------------------------------------------------
// Has / Get / Remove
// -----------------------------------------------------------------------------

// TestGet_Missing verifies Get reports a ServiceNotFoundError for unknown ids.
func TestGet_Missing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.False(t, r.Has("missing"))

	def, err := r.Get("missing")
	assert.Nil(t, def)

	var nf ServiceNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.ID)
	assert.EqualError(t, err, `di: service "missing" not found`)
}

// TestGet_Malformed verifies Get fails fast on a malformed id.
func TestGet_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Get(" ")
	var invalid InvalidIDError
	require.True(t, errors.As(err, &invalid))
}

// TestRemove verifies Remove deletes present ids and is a no-op otherwise.
func TestRemove(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("a", NewDefinition("A"))
	r.MustSet("b", NewDefinition("B"))
	r.MustSet("c", NewDefinition("C"))

	assert.True(t, r.Remove("b"))
	assert.False(t, r.Remove("b"))
	assert.False(t, r.Remove("never"))

	assert.False(t, r.Has("b"))
	assert.Equal(t, []string{"a", "c"}, r.IDs())
	assert.Equal(t, 2, r.Len())
}

//
// -----------------------------------------------------------------------------
// Tag queries
// -----------------------------------------------------------------------------

// TestFindTaggedServiceIDs verifies tagged ids come back in registration order.
func TestFindTaggedServiceIDs(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("x", NewDefinition("X").AddTag("form.type", nil))
	r.MustSet("y", NewDefinition("Y"))
	r.MustSet("z", NewDefinition("Z").AddTag("form.type", nil))

	assert.Equal(t, []string{"x", "z"}, r.FindTaggedServiceIDs("form.type"))
	assert.Empty(t, r.FindTaggedServiceIDs("form.type_extension"))
}

// TestFindTaggedSortedByPriority verifies descending priority with stable ties.
func TestFindTaggedSortedByPriority(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("low", NewDefinition("L").AddTag("form.type", map[string]any{"priority": 5}))
	r.MustSet("default1", NewDefinition("D1").AddTag("form.type", nil))
	r.MustSet("high", NewDefinition("H").AddTag("form.type", map[string]any{"priority": 10}))
	r.MustSet("default2", NewDefinition("D2").AddTag("form.type", map[string]any{}))
	r.MustSet("negative", NewDefinition("N").AddTag("form.type", map[string]any{"priority": -3}))
	r.MustSet("other", NewDefinition("O").AddTag("form.type_extension", map[string]any{"priority": 100}))

	ids, err := r.FindTaggedSortedByPriority("form.type")
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low", "default1", "default2", "negative"}, ids)
}

// TestFindTaggedSortedByPriority_RepeatedTag verifies a service tagged twice
// sorts at its highest priority occurrence.
func TestFindTaggedSortedByPriority_RepeatedTag(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("a", NewDefinition("A").AddTag("form.type", map[string]any{"priority": 5}))
	r.MustSet("b", NewDefinition("B").
		AddTag("form.type", nil).
		AddTag("form.type", map[string]any{"priority": 20}))
	r.MustSet("c", NewDefinition("C").
		AddTag("form.type", map[string]any{"priority": -1}).
		AddTag("form.type", map[string]any{"priority": -7}))

	ids, err := r.FindTaggedSortedByPriority("form.type")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

// TestFindTaggedSortedByPriority_AttributeKinds verifies decoded numeric kinds are accepted.
func TestFindTaggedSortedByPriority_AttributeKinds(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("int64", NewDefinition("A").AddTag("t", map[string]any{"priority": int64(3)}))
	r.MustSet("float", NewDefinition("B").AddTag("t", map[string]any{"priority": float64(7)}))
	r.MustSet("string", NewDefinition("C").AddTag("t", map[string]any{"priority": "5"}))

	ids, err := r.FindTaggedSortedByPriority("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"float", "string", "int64"}, ids)
}

// TestFindTaggedSortedByPriority_Invalid verifies non-integer priorities are reported.
func TestFindTaggedSortedByPriority_Invalid(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustSet("bad", NewDefinition("A").AddTag("t", map[string]any{"priority": "high"}))

	ids, err := r.FindTaggedSortedByPriority("t")
	assert.Nil(t, ids)

	var invalid InvalidPriorityError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "bad", invalid.ID)
	assert.Equal(t, "t", invalid.Tag)
	assert.EqualError(t, err, `di: service "bad" tag "t" has non-integer priority "high"`)
}
