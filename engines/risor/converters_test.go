package risor

import (
	"math"
	"testing"
	"time"

	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/require"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

func TestMarshalValue(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name string
			in   any
			want object.Object
		}{
			{"nil", nil, object.Nil},
			{"bool", true, object.True},
			{"int", 7, object.NewInt(7)},
			{"int64", int64(-3), object.NewInt(-3)},
			{"float64", 1.5, object.NewFloat(1.5)},
			{"string", "hi", object.NewString("hi")},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				got, err := marshalValue(tc.in, nil)
				require.NoError(t, err)
				require.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("uint64 above int64 range widens to float", func(t *testing.T) {
		t.Parallel()
		got, err := marshalValue(uint64(math.MaxUint64), nil)
		require.NoError(t, err)
		f, ok := got.(*object.Float)
		require.True(t, ok, "got %T", got)
		require.InEpsilon(t, float64(math.MaxUint64), f.Value(), 1e-9)
	})

	t.Run("sequence marshals element-wise", func(t *testing.T) {
		t.Parallel()
		got, err := marshalValue([]any{int64(1), "two"}, nil)
		require.NoError(t, err)
		list, ok := got.(*object.List)
		require.True(t, ok, "got %T", got)
		require.Len(t, list.Value(), 2)
		require.Equal(t, object.NewString("two"), list.Value()[1])
	})

	t.Run("timestamp normalizes to UTC", func(t *testing.T) {
		t.Parallel()
		in := time.Date(2021, 6, 1, 12, 0, 0, 0, time.FixedZone("minus5", -5*3600))
		got, err := marshalValue(in, nil)
		require.NoError(t, err)
		tm, ok := got.(*object.Time)
		require.True(t, ok, "got %T", got)
		require.Equal(t, time.UTC, tm.Value().Location())
	})

	t.Run("unknown host type wraps opaque", func(t *testing.T) {
		t.Parallel()
		type widget struct{ id int }
		got, err := marshalValue(&widget{id: 1}, nil)
		require.NoError(t, err)
		require.IsType(t, &hostOpaque{}, got)
	})
}

func TestUnmarshalObject(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name string
			in   object.Object
			want any
		}{
			{"nil", object.Nil, nil},
			{"bool", object.False, false},
			{"int", object.NewInt(9), int64(9)},
			{"float", object.NewFloat(0.25), 0.25},
			{"string", object.NewString("x"), "x"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				require.Equal(t, tc.want, unmarshalObject(tc.in))
			})
		}
	})

	t.Run("list becomes a host sequence", func(t *testing.T) {
		t.Parallel()
		in := object.NewList([]object.Object{object.NewInt(1), object.NewString("a")})
		require.Equal(t, []any{int64(1), "a"}, unmarshalObject(in))
	})

	t.Run("map stays opaque", func(t *testing.T) {
		t.Parallel()
		in := object.NewMap(map[string]object.Object{"k": object.NewInt(1)})
		got := unmarshalObject(in)
		op, ok := got.(expr.Opaque)
		require.True(t, ok, "got %T", got)
		require.Same(t, in, op.Value)
	})

	t.Run("error object stays opaque", func(t *testing.T) {
		t.Parallel()
		in := object.Errorf("boom")
		got := unmarshalObject(in)
		require.IsType(t, expr.Opaque{}, got)
	})
}

func TestBuildGlobals(t *testing.T) {
	t.Parallel()

	t.Run("every binding name is present", func(t *testing.T) {
		t.Parallel()
		globals, err := buildGlobals(expr.NewBindings())
		require.NoError(t, err)
		for _, name := range expr.BindingNames() {
			require.Contains(t, globals, name)
			require.Equal(t, object.Nil, globals[name])
		}
	})

	t.Run("record bindings require field access", func(t *testing.T) {
		t.Parallel()
		b := expr.NewBindings()
		b[expr.BindingRow] = "not a record"
		_, err := buildGlobals(b)
		require.ErrorIs(t, err, ErrInvalidBinding)
	})

	t.Run("record bindings wrap lazily", func(t *testing.T) {
		t.Parallel()
		rec := &testRecord{fields: map[string]any{"n": 1}}
		b := expr.NewBindings()
		b[expr.BindingCell] = rec
		globals, err := buildGlobals(b)
		require.NoError(t, err)
		require.IsType(t, &hostRecord{}, globals[expr.BindingCell])
		require.Empty(t, rec.accessed)
	})
}
