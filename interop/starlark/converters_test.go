package starlark

import (
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-vmbridge/vm"
)

func testState(t *testing.T) *vm.State {
	t.Helper()
	handler := slog.NewTextHandler(io.Discard, nil)
	return vm.NewState(handler, vm.DefaultArenaCapacity)
}

func TestToStarlark(t *testing.T) {
	t.Parallel()
	s := testState(t)

	tests := []struct {
		name     string
		input    vm.Value
		expected starlarkLib.Value
		wantErr  bool
	}{
		{
			name:     "nil value",
			input:    vm.Nil(),
			expected: starlarkLib.None,
		},
		{
			name:     "bool true",
			input:    vm.True(),
			expected: starlarkLib.Bool(true),
		},
		{
			name:     "bool false",
			input:    vm.False(),
			expected: starlarkLib.Bool(false),
		},
		{
			name:     "fixnum",
			input:    vm.Fixnum(42),
			expected: starlarkLib.MakeInt64(42),
		},
		{
			name:     "float",
			input:    vm.Float(3.14),
			expected: starlarkLib.Float(3.14),
		},
		{
			name:     "string",
			input:    vm.ObjValue(s.NewString("hello")),
			expected: starlarkLib.String("hello"),
		},
		{
			name:    "cptr unsupported",
			input:   vm.CPtr("opaque"),
			wantErr: true,
		},
		{
			name:    "range unsupported",
			input:   vm.ObjValue(s.NewRange(vm.Fixnum(0), vm.Fixnum(1), false)),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToStarlark(s, tc.input)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}

	t.Run("symbol converts to its name", func(t *testing.T) {
		sym := s.Intern("status")
		got, err := ToStarlark(s, vm.SymbolValue(sym))
		require.NoError(t, err)
		require.Equal(t, starlarkLib.String("status"), got)
	})

	t.Run("array converts recursively", func(t *testing.T) {
		inner := s.NewArray(vm.Fixnum(2))
		outer := s.NewArray(vm.Fixnum(1), vm.ObjValue(inner))

		got, err := ToStarlark(s, vm.ObjValue(outer))
		require.NoError(t, err)

		list, ok := got.(*starlarkLib.List)
		require.True(t, ok)
		require.Equal(t, 2, list.Len())
		require.Equal(t, starlarkLib.MakeInt64(1), list.Index(0))

		nested, ok := list.Index(1).(*starlarkLib.List)
		require.True(t, ok)
		require.Equal(t, 1, nested.Len())
	})

	t.Run("array with unsupported element fails", func(t *testing.T) {
		a := s.NewArray(vm.CPtr("opaque"))
		_, err := ToStarlark(s, vm.ObjValue(a))
		require.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestFromStarlark(t *testing.T) {
	t.Parallel()
	s := testState(t)

	t.Run("none", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.None)
		require.NoError(t, err)
		require.True(t, got.IsNil())
	})

	t.Run("nil interface", func(t *testing.T) {
		got, err := FromStarlark(s, nil)
		require.NoError(t, err)
		require.True(t, got.IsNil())
	})

	t.Run("bools", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.Bool(true))
		require.NoError(t, err)
		require.True(t, got.IsTrue())

		got, err = FromStarlark(s, starlarkLib.Bool(false))
		require.NoError(t, err)
		require.True(t, got.IsFalse())
	})

	t.Run("int", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.MakeInt(42))
		require.NoError(t, err)
		n, err := got.AsFixnum()
		require.NoError(t, err)
		require.Equal(t, int64(42), n)
	})

	t.Run("huge int fails", func(t *testing.T) {
		huge := starlarkLib.MakeBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
		_, err := FromStarlark(s, huge)
		require.ErrorIs(t, err, ErrIntOutOfRange)
	})

	t.Run("float", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.Float(1.5))
		require.NoError(t, err)
		f, err := got.AsFloat()
		require.NoError(t, err)
		require.InDelta(t, 1.5, f, 1e-12)
	})

	t.Run("string allocates a heap string", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.String("hello"))
		require.NoError(t, err)
		str, err := got.AsString()
		require.NoError(t, err)
		require.Equal(t, "hello", str.Value())
	})

	t.Run("list converts to array", func(t *testing.T) {
		list := starlarkLib.NewList([]starlarkLib.Value{
			starlarkLib.MakeInt(1),
			starlarkLib.String("two"),
		})

		got, err := FromStarlark(s, list)
		require.NoError(t, err)

		a, err := got.AsArray()
		require.NoError(t, err)
		require.Equal(t, 2, a.Len())
	})

	t.Run("tuple converts to array", func(t *testing.T) {
		tuple := starlarkLib.Tuple{starlarkLib.None, starlarkLib.Bool(true)}

		got, err := FromStarlark(s, tuple)
		require.NoError(t, err)

		a, err := got.AsArray()
		require.NoError(t, err)
		require.Equal(t, 2, a.Len())
		require.True(t, a.Get(0).IsNil())
		require.True(t, a.Get(1).IsTrue())
	})

	t.Run("dict unsupported", func(t *testing.T) {
		_, err := FromStarlark(s, starlarkLib.NewDict(0))
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("converted heap values are arena rooted", func(t *testing.T) {
		got, err := FromStarlark(s, starlarkLib.String("rooted"))
		require.NoError(t, err)

		s.FullGC()
		require.False(t, s.IsDead(got))
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	s := testState(t)

	values := []vm.Value{
		vm.Nil(),
		vm.True(),
		vm.False(),
		vm.Fixnum(-17),
		vm.Float(2.5),
		vm.ObjValue(s.NewString("echo")),
		vm.ObjValue(s.NewArray(vm.Fixnum(1), vm.True())),
	}

	for _, original := range values {
		converted, err := ToStarlark(s, original)
		require.NoError(t, err)

		back, err := FromStarlark(s, converted)
		require.NoError(t, err)
		require.Equal(t, original.Tag(), back.Tag(), "tag survives the round trip for %s", original)
	}
}
