package vm

// Header is the bookkeeping block shared by every heap-allocated object.
// The collector owns the mark and dead bits; the frozen bit is set by hosts
// and only ever queried by value operations.
type Header struct {
	kind   Tag
	frozen bool
	marked bool
	dead   bool
}

// Kind returns the object's value tag.
func (h *Header) Kind() Tag { return h.kind }

// Frozen reports whether the object has been frozen.
func (h *Header) Frozen() bool { return h.frozen }

// Freeze marks the object immutable. There is no thaw.
func (h *Header) Freeze() { h.frozen = true }

// Dead reports whether the object was swept by the collector but its header
// has not yet been reclaimed.
func (h *Header) Dead() bool { return h.dead }

// Marked reports whether the object is marked reachable for the current
// collection cycle.
func (h *Header) Marked() bool { return h.marked }

// HeapObject is implemented by every object kind allocated on the
// interpreter heap. Storage is exclusively owned by the State that allocated
// it; Values and hosts only ever borrow references.
type HeapObject interface {
	Header() *Header
}

// Object is a plain instance: a class pointer plus instance variables.
type Object struct {
	header Header
	class  *Class
	ivars  map[Symbol]Value
}

func (o *Object) Header() *Header { return &o.header }

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// IVarGet returns the instance variable for sym, or nil-value when unset.
func (o *Object) IVarGet(sym Symbol) Value {
	if v, ok := o.ivars[sym]; ok {
		return v
	}
	return Nil()
}

// IVarSet sets an instance variable.
func (o *Object) IVarSet(sym Symbol, v Value) {
	if o.ivars == nil {
		o.ivars = make(map[Symbol]Value)
	}
	o.ivars[sym] = v
}

// DataType describes a host-defined payload attached to a Data object. The
// interpreter uses it for type identification and runs Free (if non-nil)
// when the object is swept.
type DataType struct {
	Name string
	Free func(ptr any)
}

// Class is a class or module descriptor. Modules are classes with the module
// flag set and no instantiation.
type Class struct {
	header      Header
	name        string
	super       *Class
	module      bool
	instanceTag Tag // kind produced by NewInstance, TagObject by default
	dataType    *DataType
}

func (c *Class) Header() *Header { return &c.header }

// Name returns the class name as registered in the class table.
func (c *Class) Name() string { return c.name }

// Super returns the superclass, or nil for a root class or module.
func (c *Class) Super() *Class { return c.super }

// IsModule reports whether the descriptor is a module.
func (c *Class) IsModule() bool { return c.module }

// InstanceTag returns the object kind NewInstance produces for this class.
func (c *Class) InstanceTag() Tag { return c.instanceTag }

// SetInstanceTag switches the object kind NewInstance produces. Hosts set
// this to TagData so instances carry native payloads.
func (c *Class) SetInstanceTag(tag Tag) { c.instanceTag = tag }

// DataType returns the native-data descriptor attached to the class, if any.
func (c *Class) DataType() *DataType { return c.dataType }

// SetDataType attaches a native-data descriptor to the class.
func (c *Class) SetDataType(dt *DataType) { c.dataType = dt }

// SubclassOf reports whether c is other or a descendant of other.
func (c *Class) SubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.super {
		if cur == other {
			return true
		}
	}
	return false
}

// Proc is a compiled-closure descriptor. The interpreter owns the body; the
// bridge only moves the pointer around.
type Proc struct {
	header Header
	arity  int
	body   func(s *State, args []Value) Value
}

func (p *Proc) Header() *Header { return &p.header }

// Arity returns the declared argument count, or -1 for variadic.
func (p *Proc) Arity() int { return p.arity }

// Call invokes the closure body on the owning state.
func (p *Proc) Call(s *State, args []Value) Value {
	if p.body == nil {
		return Nil()
	}
	return p.body(s, args)
}

// Data is a managed shell around an opaque host payload.
type Data struct {
	header   Header
	class    *Class
	ptr      any
	dataType *DataType
}

func (d *Data) Header() *Header { return &d.header }

// Class returns the class the shell was instantiated from.
func (d *Data) Class() *Class { return d.class }

// Ptr returns the opaque payload.
func (d *Data) Ptr() any { return d.ptr }

// DataType returns the descriptor installed by Init.
func (d *Data) DataType() *DataType { return d.dataType }

// Init installs the payload and its descriptor. The shell must have been
// freshly allocated as a data-kind object; Init on a shell already carrying
// a payload replaces it without finalizing the old one.
func (d *Data) Init(ptr any, dt *DataType) {
	d.ptr = ptr
	d.dataType = dt
}

// Array is the ordered sequence container.
type Array struct {
	header Header
	elems  []Value
}

func (a *Array) Header() *Header { return &a.header }

// Len returns the element count by reading the backing slice directly.
func (a *Array) Len() int { return len(a.elems) }

// Get returns the element at idx, or nil-value when out of range.
func (a *Array) Get(idx int) Value {
	if idx < 0 || idx >= len(a.elems) {
		return Nil()
	}
	return a.elems[idx]
}

// Push appends an element.
func (a *Array) Push(v Value) { a.elems = append(a.elems, v) }

// Set stores an element at idx, growing the array with nil-values as needed.
func (a *Array) Set(idx int, v Value) {
	if idx < 0 {
		return
	}
	for len(a.elems) <= idx {
		a.elems = append(a.elems, Nil())
	}
	a.elems[idx] = v
}

// Elems returns the backing slice. Callers must not retain it across an
// operation that may grow the array.
func (a *Array) Elems() []Value { return a.elems }

// String is a mutable byte string.
type String struct {
	header Header
	bytes  []byte
}

func (s *String) Header() *Header { return &s.header }

// Len returns the byte length.
func (s *String) Len() int { return len(s.bytes) }

// Value returns the contents as a Go string.
func (s *String) Value() string { return string(s.bytes) }

// Bytes returns the backing bytes without copying.
func (s *String) Bytes() []byte { return s.bytes }

// Range is a begin/end pair with an exclusivity flag.
type Range struct {
	header    Header
	begin     Value
	end       Value
	exclusive bool
}

func (r *Range) Header() *Header { return &r.header }

// Begin returns the range start.
func (r *Range) Begin() Value { return r.begin }

// End returns the range end.
func (r *Range) End() Value { return r.end }

// Exclusive reports whether the range excludes its end.
func (r *Range) Exclusive() bool { return r.exclusive }
