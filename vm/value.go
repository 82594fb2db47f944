package vm

import "fmt"

// Tag discriminates the payload kind of a Value. A value's tag is fixed at
// construction; converting between kinds always produces a new Value.
type Tag uint8

const (
	TagNil Tag = iota
	TagFalse
	TagTrue
	TagFixnum
	TagFloat
	TagSymbol
	TagCPtr
	TagObject
	TagClass
	TagModule
	TagProc
	TagData
	TagArray
	TagString
	TagRange
	TagException
)

var tagNames = map[Tag]string{
	TagNil:       "nil",
	TagFalse:     "false",
	TagTrue:      "true",
	TagFixnum:    "fixnum",
	TagFloat:     "float",
	TagSymbol:    "symbol",
	TagCPtr:      "cptr",
	TagObject:    "object",
	TagClass:     "class",
	TagModule:    "module",
	TagProc:      "proc",
	TagData:      "data",
	TagArray:     "array",
	TagString:    "string",
	TagRange:     "range",
	TagException: "exception",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Immediate reports whether values of this tag carry their payload inline.
// Immediate values are never heap-allocated and are invisible to the
// collector.
func (t Tag) Immediate() bool {
	switch t {
	case TagNil, TagFalse, TagTrue, TagFixnum, TagFloat, TagSymbol, TagCPtr:
		return true
	}
	return false
}

// Symbol is an interned identifier id. Ids are only meaningful within the
// State that interned them.
type Symbol uint32

// Value is the tagged union flowing through every interpreter operation.
// Immediate tags carry their payload in the scalar fields; pointer tags
// borrow a reference to storage owned by the interpreter heap. Copying a
// Value never copies heap storage.
type Value struct {
	tag  Tag
	num  int64      // fixnum payload, or symbol id widened
	fnum float64    // float payload
	obj  HeapObject // heap payload for pointer tags
	cptr any        // opaque host pointer payload
}

// Tag returns the value's discriminant.
func (v Value) Tag() Tag { return v.tag }

// Immediate reports whether the value is an immediate (non-heap) value.
func (v Value) Immediate() bool { return v.tag.Immediate() }

// Nil constructs the nil value.
func Nil() Value { return Value{tag: TagNil} }

// False constructs the false value.
func False() Value { return Value{tag: TagFalse} }

// True constructs the true value.
func True() Value { return Value{tag: TagTrue} }

// Bool constructs true or false from a Go bool.
func Bool(b bool) Value {
	if b {
		return True()
	}
	return False()
}

// Fixnum constructs an integer value.
func Fixnum(n int64) Value { return Value{tag: TagFixnum, num: n} }

// Float constructs a floating-point value.
func Float(f float64) Value { return Value{tag: TagFloat, fnum: f} }

// SymbolValue constructs a symbol value from an interned id.
func SymbolValue(sym Symbol) Value { return Value{tag: TagSymbol, num: int64(sym)} }

// CPtr wraps an opaque host pointer. The payload is never inspected or
// retained by the interpreter.
func CPtr(ptr any) Value { return Value{tag: TagCPtr, cptr: ptr} }

// ObjValue wraps a heap object, deriving the tag from the object header.
func ObjValue(obj HeapObject) Value {
	return Value{tag: obj.Header().kind, obj: obj}
}

func (v Value) String() string {
	switch v.tag {
	case TagNil:
		return "nil"
	case TagFalse:
		return "false"
	case TagTrue:
		return "true"
	case TagFixnum:
		return fmt.Sprintf("%d", v.num)
	case TagFloat:
		return fmt.Sprintf("%g", v.fnum)
	case TagSymbol:
		return fmt.Sprintf("symbol(%d)", v.num)
	case TagCPtr:
		return fmt.Sprintf("cptr(%p)", v.cptr)
	default:
		return fmt.Sprintf("%s(%p)", v.tag, v.obj)
	}
}
