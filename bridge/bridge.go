// Package bridge exposes the interpreter's value primitives as plain, flat
// functions with fixed calling conventions, so hosts can inspect, construct,
// and manage values without reaching into the vm package's method set.
//
// Every function forwards to exactly one vm operation. The extraction
// functions are the unchecked accessor tier: the caller must have verified
// the value's tag by protocol, a mismatched tag is a caller bug. For checked
// access use the (T, error) accessors on vm.Value directly.
package bridge

import "github.com/robbyt/go-vmbridge/vm"

// Predicates

// ValueIsNil reports whether value is the nil value.
func ValueIsNil(value vm.Value) bool { return value.IsNil() }

// ValueIsFalse reports whether value is the false value.
func ValueIsFalse(value vm.Value) bool { return value.IsFalse() }

// ValueIsTrue reports whether value is the true value.
func ValueIsTrue(value vm.Value) bool { return value.IsTrue() }

// RangeExcl reports whether value is a range excluding its end point.
func RangeExcl(s *vm.State, value vm.Value) bool {
	_ = s
	return value.RangeExclusive()
}

// ObjFrozen reports whether value is frozen. Immediate values are always
// frozen; heap values consult the object header.
func ObjFrozen(s *vm.State, value vm.Value) bool {
	_ = s
	return value.Frozen()
}

// Extraction (unchecked tier)

// FixnumToInt returns the integer payload. Unchecked.
func FixnumToInt(value vm.Value) int64 { return value.UncheckedFixnum() }

// FloatToF64 returns the floating-point payload. Unchecked.
func FloatToF64(value vm.Value) float64 { return value.UncheckedFloat() }

// SymbolToID returns the interned symbol id payload. Unchecked.
func SymbolToID(value vm.Value) vm.Symbol { return value.UncheckedSymbol() }

// CPtrPtr returns the opaque host pointer payload. Unchecked.
func CPtrPtr(value vm.Value) any { return value.UncheckedCPtr() }

// BasicPtr returns the heap object header behind value. Unchecked; nil for
// immediate values.
func BasicPtr(value vm.Value) *vm.Header {
	obj := value.Obj()
	if obj == nil {
		return nil
	}
	return obj.Header()
}

// ObjPtr returns the heap object behind value. Unchecked; nil for immediate
// values.
func ObjPtr(value vm.Value) vm.HeapObject { return value.Obj() }

// ProcPtr returns the closure descriptor behind value. Unchecked: a
// non-proc value panics.
func ProcPtr(value vm.Value) *vm.Proc {
	return value.Obj().(*vm.Proc)
}

// ClassPtr returns the class descriptor behind value. Unchecked: the caller
// asserts value is a class or module.
func ClassPtr(value vm.Value) *vm.Class {
	return value.Obj().(*vm.Class)
}

// ClassToDesc reinterprets value's heap payload as a class descriptor with
// no tag check at all. The caller asserts value is a class or module; any
// other heap kind panics, which is the closest Go rendering of reading the
// wrong union member.
func ClassToDesc(value vm.Value) *vm.Class {
	return value.Obj().(*vm.Class)
}

// ClassOfValue resolves the class of an arbitrary value through the
// tag-checked path.
func ClassOfValue(s *vm.State, value vm.Value) *vm.Class {
	return s.ClassOf(value)
}

// Construction

// NilValue constructs the nil value.
func NilValue() vm.Value { return vm.Nil() }

// FalseValue constructs the false value.
func FalseValue() vm.Value { return vm.False() }

// TrueValue constructs the true value.
func TrueValue() vm.Value { return vm.True() }

// FixnumValue constructs an integer value.
func FixnumValue(n int64) vm.Value { return vm.Fixnum(n) }

// FloatValue constructs a floating-point value.
func FloatValue(s *vm.State, f float64) vm.Value {
	_ = s
	return vm.Float(f)
}

// CPtrValue wraps an opaque host pointer in a value.
func CPtrValue(s *vm.State, ptr any) vm.Value {
	_ = s
	return vm.CPtr(ptr)
}

// ObjValue wraps a heap object, deriving the tag from the object header.
// The value is not registered with the collector's root set; callers must
// keep it reachable (an arena savepoint, typically) across collections.
func ObjValue(obj vm.HeapObject) vm.Value { return vm.ObjValue(obj) }

// ClassValue wraps a class descriptor in a class-tagged value.
func ClassValue(class *vm.Class) vm.Value { return vm.ObjValue(class) }

// ModuleValue wraps a module descriptor in a module-tagged value.
func ModuleValue(module *vm.Class) vm.Value { return vm.ObjValue(module) }

// DataValue wraps a native-data shell in a data-tagged value.
func DataValue(data *vm.Data) vm.Value { return vm.ObjValue(data) }

// ProcValue wraps a closure descriptor in a proc-tagged value.
func ProcValue(s *vm.State, proc *vm.Proc) vm.Value {
	_ = s
	return vm.ObjValue(proc)
}

// NewSymbol constructs a symbol value from an interned id.
func NewSymbol(id vm.Symbol) vm.Value { return vm.SymbolValue(id) }

// SymbolFromName interns name in s and returns it as a symbol value.
func SymbolFromName(s *vm.State, name string) vm.Value {
	return vm.SymbolValue(s.Intern(name))
}

// Native-data binding

// SetInstanceTag switches class to instantiate into native-data shells (or
// back to plain objects). Hosts call this once at class-registration time.
func SetInstanceTag(class *vm.Class, tag vm.Tag) {
	class.SetInstanceTag(tag)
}

// DataInit initializes a freshly allocated data shell in place with an
// opaque pointer and its type descriptor. The shell must carry the data
// tag; anything else is a caller bug and panics.
func DataInit(value *vm.Value, ptr any, dataType *vm.DataType) {
	value.Obj().(*vm.Data).Init(ptr, dataType)
}

// Exceptions

// Raise constructs and throws an exception of the named class. Control does
// not return; the raise unwinds to the nearest vm.State.Protect boundary.
// An unbound class name itself raises NameError.
func Raise(s *vm.State, className, msg string) {
	s.Raise(s.ClassGet(className), msg)
}

// RaiseCurrent re-throws the pending exception, or returns normally when no
// exception is pending.
func RaiseCurrent(s *vm.State) {
	s.RaiseCurrent()
}

// Container introspection

// AryLen returns the element count of an array value by reading the backing
// storage length directly, bypassing the generic tag-checked sequence
// accessor. Unchecked: the caller asserts value is an array.
func AryLen(value vm.Value) int64 {
	return int64(value.Obj().(*vm.Array).Len())
}

// Garbage collector control

// GCArenaSave returns a checkpoint for the temporary-root arena.
func GCArenaSave(s *vm.State) int { return s.ArenaSave() }

// GCArenaRestore rewinds the arena to a previously saved checkpoint.
func GCArenaRestore(s *vm.State, checkpoint int) { s.ArenaRestore(checkpoint) }

// GCDisable stops the collector, returning whether it was enabled before
// the call.
func GCDisable(s *vm.State) bool { return s.GCDisable() }

// GCEnable starts the collector, returning whether it was enabled before
// the call.
func GCEnable(s *vm.State) bool { return s.GCEnable() }

// ValueIsDead reports whether value's heap object was swept but not yet
// reclaimed. Immediate values are never dead; a nil object reference always
// is.
func ValueIsDead(s *vm.State, value vm.Value) bool { return s.IsDead(value) }

// GCLiveObjects returns the collector's live heap object count.
func GCLiveObjects(s *vm.State) int { return s.LiveObjectCount() }

// SafeGCMark marks value reachable for the current collection cycle,
// skipping immediate values.
func SafeGCMark(s *vm.State, value vm.Value) { s.GCMark(value) }
