package vm

// gcState is the collector's state block: the heap list, the live-object
// count, the enabled flag, and the temporary-root arena.
type gcState struct {
	heap     []HeapObject
	live     int
	disabled bool
	arena    []HeapObject
}

// ArenaSave returns an opaque checkpoint for the temporary-root arena.
// Checkpoints must be restored in LIFO order; the collector performs no
// nesting validation.
func (s *State) ArenaSave() int {
	return len(s.gc.arena)
}

// ArenaRestore rewinds the arena to a previously saved checkpoint,
// releasing every temporary root registered after it. Released objects
// become eligible for the next collection cycle unless otherwise reachable.
func (s *State) ArenaRestore(checkpoint int) {
	if checkpoint < 0 {
		checkpoint = 0
	}
	if checkpoint > len(s.gc.arena) {
		return
	}
	for i := checkpoint; i < len(s.gc.arena); i++ {
		s.gc.arena[i] = nil
	}
	s.gc.arena = s.gc.arena[:checkpoint]
}

// ArenaSavepoint pairs an arena save with its restore so call sequences
// that construct temporary values cannot leave the arena unbalanced.
type ArenaSavepoint struct {
	s        *State
	idx      int
	restored bool
}

// CreateArenaSavepoint saves the arena and returns a guard that rewinds it.
func (s *State) CreateArenaSavepoint() *ArenaSavepoint {
	return &ArenaSavepoint{s: s, idx: s.ArenaSave()}
}

// Restore rewinds the arena to the savepoint. Restoring twice is a no-op.
func (sp *ArenaSavepoint) Restore() {
	if sp.restored {
		return
	}
	sp.restored = true
	sp.s.ArenaRestore(sp.idx)
}

// GCDisable stops the collector and returns whether it was enabled before
// the call, so callers can restore the prior state.
func (s *State) GCDisable() bool {
	wasEnabled := !s.gc.disabled
	s.gc.disabled = true
	return wasEnabled
}

// GCEnable starts the collector and returns whether it was enabled before
// the call.
func (s *State) GCEnable() bool {
	wasEnabled := !s.gc.disabled
	s.gc.disabled = false
	return wasEnabled
}

// GCEnabled reports the collector's current state.
func (s *State) GCEnabled() bool { return !s.gc.disabled }

// LiveObjectCount returns the collector's running count of live heap
// objects. Diagnostic only.
func (s *State) LiveObjectCount() int { return s.gc.live }

// IsDead reports whether v's heap object was swept but not yet reclaimed.
// Immediate values are never collected and so never dead; a value carrying
// a nil object reference is always dead.
func (s *State) IsDead(v Value) bool {
	if v.Immediate() {
		return false
	}
	if v.obj == nil {
		return true
	}
	return v.obj.Header().dead
}

// GCMark manually marks v reachable for the current collection cycle,
// skipping immediate values. Hosts use it for values stashed where the
// collector's graph walk cannot see them.
func (s *State) GCMark(v Value) {
	if v.Immediate() || v.obj == nil {
		return
	}
	s.mark(v.obj)
}

// mark flags obj and everything reachable from it. The mark bit doubles as
// the visited flag, so shared structure is walked once.
func (s *State) mark(obj HeapObject) {
	h := obj.Header()
	if h.marked || h.dead {
		return
	}
	h.marked = true

	switch o := obj.(type) {
	case *Object:
		if o.class != nil {
			s.mark(o.class)
		}
		for _, v := range o.ivars {
			s.markValue(v)
		}
	case *Array:
		for _, v := range o.elems {
			s.markValue(v)
		}
	case *Range:
		s.markValue(o.begin)
		s.markValue(o.end)
	case *Exception:
		if o.class != nil {
			s.mark(o.class)
		}
	case *Data:
		if o.class != nil {
			s.mark(o.class)
		}
	case *Class:
		if o.super != nil {
			s.mark(o.super)
		}
	}
}

func (s *State) markValue(v Value) {
	if v.Immediate() || v.obj == nil {
		return
	}
	s.mark(v.obj)
}

// FullGC runs one mark-and-sweep cycle: mark from the arena, the class
// table, and the pending exception, then sweep everything unmarked. Swept
// objects keep their headers with the dead flag set until the heap list
// entry is dropped, and data finalizers run during the sweep. Marks set
// before the cycle (via GCMark) count as reachable; survivor marks are
// cleared so the next cycle starts fresh. A disabled collector does
// nothing.
func (s *State) FullGC() {
	if s.gc.disabled {
		return
	}

	for _, obj := range s.gc.arena {
		if obj != nil {
			s.mark(obj)
		}
	}
	for _, class := range s.classes {
		s.mark(class)
	}
	if s.exc != nil {
		s.mark(s.exc)
	}

	swept := 0
	kept := s.gc.heap[:0]
	for _, obj := range s.gc.heap {
		h := obj.Header()
		if h.marked {
			h.marked = false
			kept = append(kept, obj)
			continue
		}
		s.finalize(obj)
		h.dead = true
		s.gc.live--
		swept++
	}
	// drop the tail so swept objects are not resurrected by reslicing
	for i := len(kept); i < len(s.gc.heap); i++ {
		s.gc.heap[i] = nil
	}
	s.gc.heap = kept

	// class descriptors live off-heap in the class table; clear their marks
	// here since the sweep never visits them
	for _, class := range s.classes {
		class.header.marked = false
	}

	s.logger.Debug("collection cycle complete", "swept", swept, "live", s.gc.live)
}

// finalize runs the native-data finalizer for data shells being swept.
func (s *State) finalize(obj HeapObject) {
	d, ok := obj.(*Data)
	if !ok {
		return
	}
	if d.dataType != nil && d.dataType.Free != nil && d.ptr != nil {
		d.dataType.Free(d.ptr)
		d.ptr = nil
	}
}
