package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaSaveRestore(t *testing.T) {
	t.Parallel()
	s := testState(t)

	t.Run("roots after the savepoint are collectible", func(t *testing.T) {
		before := ObjValue(s.NewString("kept"))

		checkpoint := s.ArenaSave()
		after := ObjValue(s.NewString("dropped"))

		s.ArenaRestore(checkpoint)
		s.FullGC()

		require.False(t, s.IsDead(before), "pre-savepoint root must survive")
		require.True(t, s.IsDead(after), "post-savepoint temporary must be swept")
	})

	t.Run("restore is bounds tolerant", func(t *testing.T) {
		s.ArenaRestore(-1)
		s.ArenaRestore(1 << 20)
	})

	t.Run("savepoint guard restores once", func(t *testing.T) {
		sp := s.CreateArenaSavepoint()
		tmp := ObjValue(s.NewArray(Fixnum(1)))
		sp.Restore()
		sp.Restore()

		s.FullGC()
		require.True(t, s.IsDead(tmp))
	})
}

func TestGCEnableDisable(t *testing.T) {
	t.Parallel()
	s := testState(t)

	require.True(t, s.GCEnabled(), "collector starts enabled")

	wasEnabled := s.GCDisable()
	require.True(t, wasEnabled, "disable reports the pre-call state")
	require.False(t, s.GCEnabled())

	wasEnabled = s.GCDisable()
	require.False(t, wasEnabled, "second disable sees a disabled collector")

	wasEnabled = s.GCEnable()
	require.False(t, wasEnabled, "enable reports the pre-call state")
	require.True(t, s.GCEnabled())

	wasEnabled = s.GCEnable()
	require.True(t, wasEnabled)
}

func TestDisabledCollectorSweepsNothing(t *testing.T) {
	t.Parallel()
	s := testState(t)

	checkpoint := s.ArenaSave()
	tmp := ObjValue(s.NewString("limbo"))
	s.ArenaRestore(checkpoint)

	s.GCDisable()
	s.FullGC()
	require.False(t, s.IsDead(tmp), "disabled collector must not sweep")

	s.GCEnable()
	s.FullGC()
	require.True(t, s.IsDead(tmp))
}

func TestIsDeadBoundaries(t *testing.T) {
	t.Parallel()
	s := testState(t)

	t.Run("immediates are never dead", func(t *testing.T) {
		for _, v := range []Value{Nil(), False(), True(), Fixnum(27), Float(64.0), SymbolValue(2), CPtr("x")} {
			assert.False(t, s.IsDead(v), v.String())
		}
	})

	t.Run("nil object reference is always dead", func(t *testing.T) {
		require.True(t, s.IsDead(Value{tag: TagObject}))
	})

	t.Run("live heap object is not dead", func(t *testing.T) {
		v := ObjValue(s.NewString("live"))
		require.False(t, s.IsDead(v))
	})
}

func TestLiveObjectCount(t *testing.T) {
	t.Parallel()
	s := testState(t)

	base := s.LiveObjectCount()

	checkpoint := s.ArenaSave()
	s.NewString("a")
	s.NewArray(Fixnum(1), Fixnum(2))
	s.NewObject(nil)
	require.Equal(t, base+3, s.LiveObjectCount())

	s.ArenaRestore(checkpoint)
	s.FullGC()
	require.Equal(t, base, s.LiveObjectCount())
}

func TestGCMark(t *testing.T) {
	t.Parallel()
	s := testState(t)

	t.Run("manual mark protects the next cycle", func(t *testing.T) {
		checkpoint := s.ArenaSave()
		stashed := ObjValue(s.NewString("stashed in native memory"))
		s.ArenaRestore(checkpoint)

		s.GCMark(stashed)
		s.FullGC()
		require.False(t, s.IsDead(stashed), "marked value survives the cycle it was marked for")

		s.FullGC()
		require.True(t, s.IsDead(stashed), "protection does not carry into later cycles")
	})

	t.Run("mark is transitive", func(t *testing.T) {
		checkpoint := s.ArenaSave()
		inner := ObjValue(s.NewString("inner"))
		outer := ObjValue(s.NewArray(inner))
		s.ArenaRestore(checkpoint)

		s.GCMark(outer)
		s.FullGC()
		require.False(t, s.IsDead(inner), "children of a marked container survive")
	})

	t.Run("marking immediates is a no-op", func(t *testing.T) {
		s.GCMark(Fixnum(1))
		s.GCMark(Nil())
	})
}

func TestReachabilityThroughContainers(t *testing.T) {
	t.Parallel()
	s := testState(t)

	// the outer array stays arena-rooted, so everything hanging off it
	// must survive arbitrarily many cycles
	inner := s.NewString("payload")
	rng := s.NewRange(Fixnum(0), ObjValue(inner), false)
	outer := s.NewArray(ObjValue(rng))

	s.FullGC()
	s.FullGC()

	require.False(t, s.IsDead(ObjValue(outer)))
	require.False(t, s.IsDead(ObjValue(rng)))
	require.False(t, s.IsDead(ObjValue(inner)))
}

func TestDataFinalizer(t *testing.T) {
	t.Parallel()
	s := testState(t)

	freed := 0
	dt := &DataType{
		Name: "host_handle",
		Free: func(ptr any) { freed++ },
	}

	checkpoint := s.ArenaSave()
	shell := s.NewData(nil)
	shell.Init(&struct{}{}, dt)
	s.ArenaRestore(checkpoint)

	s.FullGC()
	require.Equal(t, 1, freed, "finalizer runs when the shell is swept")

	s.FullGC()
	require.Equal(t, 1, freed, "finalizer runs exactly once")
}

func TestPendingExceptionIsARoot(t *testing.T) {
	t.Parallel()
	s := testState(t)

	checkpoint := s.ArenaSave()
	_, err := s.Protect(func(s *State) Value {
		s.Raisef("RuntimeError", "kept alive by the pending slot")
		return Nil()
	})
	require.Error(t, err)
	s.ArenaRestore(checkpoint)

	s.FullGC()
	require.NotNil(t, s.Err())
	require.False(t, s.Err().Header().Dead(), "pending exception must not be swept")

	s.ClearError()
	s.FullGC()
}
