package vm

import "fmt"

// The checked accessor tier. Every accessor verifies the tag and returns
// ErrTagMismatch on disagreement. The bridge package carries the unchecked
// tier for callers that have already verified the tag by protocol.

func tagErr(want Tag, v Value) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTagMismatch, want, v.tag)
}

// AsFixnum returns the integer payload.
func (v Value) AsFixnum() (int64, error) {
	if v.tag != TagFixnum {
		return 0, tagErr(TagFixnum, v)
	}
	return v.num, nil
}

// AsFloat returns the floating-point payload.
func (v Value) AsFloat() (float64, error) {
	if v.tag != TagFloat {
		return 0, tagErr(TagFloat, v)
	}
	return v.fnum, nil
}

// AsSymbol returns the interned symbol id.
func (v Value) AsSymbol() (Symbol, error) {
	if v.tag != TagSymbol {
		return 0, tagErr(TagSymbol, v)
	}
	return Symbol(v.num), nil
}

// AsCPtr returns the opaque host pointer payload.
func (v Value) AsCPtr() (any, error) {
	if v.tag != TagCPtr {
		return nil, tagErr(TagCPtr, v)
	}
	return v.cptr, nil
}

// AsObject returns the heap payload as a plain instance.
func (v Value) AsObject() (*Object, error) {
	if v.tag != TagObject {
		return nil, tagErr(TagObject, v)
	}
	o, ok := v.obj.(*Object)
	if !ok {
		return nil, ErrNilObject
	}
	return o, nil
}

// AsClass returns the heap payload as a class or module descriptor.
func (v Value) AsClass() (*Class, error) {
	if v.tag != TagClass && v.tag != TagModule {
		return nil, tagErr(TagClass, v)
	}
	c, ok := v.obj.(*Class)
	if !ok {
		return nil, ErrNilObject
	}
	return c, nil
}

// AsProc returns the heap payload as a closure descriptor.
func (v Value) AsProc() (*Proc, error) {
	if v.tag != TagProc {
		return nil, tagErr(TagProc, v)
	}
	p, ok := v.obj.(*Proc)
	if !ok {
		return nil, ErrNilObject
	}
	return p, nil
}

// AsData returns the heap payload as a native-data shell.
func (v Value) AsData() (*Data, error) {
	if v.tag != TagData {
		return nil, tagErr(TagData, v)
	}
	d, ok := v.obj.(*Data)
	if !ok {
		return nil, ErrNilObject
	}
	return d, nil
}

// AsArray returns the heap payload as an array.
func (v Value) AsArray() (*Array, error) {
	if v.tag != TagArray {
		return nil, tagErr(TagArray, v)
	}
	a, ok := v.obj.(*Array)
	if !ok {
		return nil, ErrNilObject
	}
	return a, nil
}

// AsString returns the heap payload as a string.
func (v Value) AsString() (*String, error) {
	if v.tag != TagString {
		return nil, tagErr(TagString, v)
	}
	str, ok := v.obj.(*String)
	if !ok {
		return nil, ErrNilObject
	}
	return str, nil
}

// AsRange returns the heap payload as a range.
func (v Value) AsRange() (*Range, error) {
	if v.tag != TagRange {
		return nil, tagErr(TagRange, v)
	}
	r, ok := v.obj.(*Range)
	if !ok {
		return nil, ErrNilObject
	}
	return r, nil
}

// AsException returns the heap payload as an exception.
func (v Value) AsException() (*Exception, error) {
	if v.tag != TagException {
		return nil, tagErr(TagException, v)
	}
	e, ok := v.obj.(*Exception)
	if !ok {
		return nil, ErrNilObject
	}
	return e, nil
}

// Obj returns the heap payload without any tag check. Callers must have
// verified the tag by protocol; on an immediate value the result is nil.
func (v Value) Obj() HeapObject { return v.obj }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.tag == TagNil }

// IsFalse reports whether v is the false value.
func (v Value) IsFalse() bool { return v.tag == TagFalse }

// IsTrue reports whether v is the true value.
func (v Value) IsTrue() bool { return v.tag == TagTrue }

// Truthy reports whether v is neither nil nor false.
func (v Value) Truthy() bool { return v.tag != TagNil && v.tag != TagFalse }

// Frozen reports whether v is frozen. Immediate values are always frozen;
// heap values consult the object header.
func (v Value) Frozen() bool {
	if v.Immediate() {
		return true
	}
	if v.obj == nil {
		return true
	}
	return v.obj.Header().frozen
}

// RangeExclusive reports whether v is a range excluding its end point.
// Non-range values are never exclusive ranges.
func (v Value) RangeExclusive() bool {
	r, err := v.AsRange()
	if err != nil {
		return false
	}
	return r.Exclusive()
}

// ClassOf resolves the class of an arbitrary value through the tag-checked
// path: immediates map to their builtin classes, heap values carry their
// class on the object.
func (s *State) ClassOf(v Value) *Class {
	switch v.tag {
	case TagNil:
		return s.classes["NilClass"]
	case TagFalse:
		return s.classes["FalseClass"]
	case TagTrue:
		return s.classes["TrueClass"]
	case TagFixnum:
		return s.classes["Integer"]
	case TagFloat:
		return s.classes["Float"]
	case TagSymbol:
		return s.classes["Symbol"]
	case TagCPtr:
		return s.objectClass
	case TagObject:
		if o, err := v.AsObject(); err == nil && o.class != nil {
			return o.class
		}
		return s.objectClass
	case TagClass:
		return s.classes["Class"]
	case TagModule:
		return s.classes["Module"]
	case TagProc:
		return s.classes["Proc"]
	case TagData:
		if d, err := v.AsData(); err == nil && d.class != nil {
			return d.class
		}
		return s.objectClass
	case TagArray:
		return s.classes["Array"]
	case TagString:
		return s.classes["String"]
	case TagRange:
		return s.classes["Range"]
	case TagException:
		if e, err := v.AsException(); err == nil && e.class != nil {
			return e.class
		}
		return s.classes["Exception"]
	}
	return s.objectClass
}
