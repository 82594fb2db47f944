package vm

import (
	"log/slog"

	"github.com/robbyt/go-vmbridge/internal/helpers"
)

// DefaultArenaCapacity is the initial capacity of the temporary-root arena.
const DefaultArenaCapacity = 100

// State is one interpreter instance: the heap, the collector state block,
// the class and symbol tables, and the pending-exception slot. A State is
// not safe for concurrent use; the host must serialize all access to an
// instance for its lifetime.
type State struct {
	gc      gcState
	classes map[string]*Class

	symbols     map[string]Symbol
	symbolNames []string

	exc *Exception

	objectClass *Class

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewState constructs a booted interpreter instance. The core class
// hierarchy and the exception tree are registered before NewState returns.
func NewState(handler slog.Handler, arenaCapacity int) *State {
	handler, logger := helpers.SetupLogger(handler, "vm", "State")

	if arenaCapacity <= 0 {
		arenaCapacity = DefaultArenaCapacity
	}

	s := &State{
		classes: make(map[string]*Class),
		symbols: make(map[string]Symbol),
		gc: gcState{
			arena: make([]HeapObject, 0, arenaCapacity),
		},
		logHandler: handler,
		logger:     logger,
	}
	s.bootCoreClasses()

	logger.Debug("interpreter state created", "arenaCapacity", arenaCapacity)
	return s
}

func (s *State) String() string {
	return "vm.State"
}

// Logger returns the state's logger.
func (s *State) Logger() *slog.Logger { return s.logger }

// LogHandler returns the slog handler the state was built with.
func (s *State) LogHandler() slog.Handler { return s.logHandler }

// bootCoreClasses registers the classes every instance starts with. The
// exception tree mirrors the subset embedders raise through the bridge.
func (s *State) bootCoreClasses() {
	object := s.DefineClass("Object", nil)
	s.objectClass = object

	s.DefineModule("Kernel")
	s.DefineModule("Comparable")

	s.DefineClass("NilClass", object)
	s.DefineClass("FalseClass", object)
	s.DefineClass("TrueClass", object)
	s.DefineClass("Integer", object)
	s.DefineClass("Float", object)
	s.DefineClass("Symbol", object)
	s.DefineClass("Array", object)
	s.DefineClass("String", object)
	s.DefineClass("Range", object)
	s.DefineClass("Proc", object)
	s.DefineClass("Module", object)
	s.DefineClass("Class", object)

	exception := s.DefineClass("Exception", object)
	standard := s.DefineClass("StandardError", exception)
	s.DefineClass("RuntimeError", standard)
	s.DefineClass("TypeError", standard)
	s.DefineClass("ArgumentError", standard)
	s.DefineClass("NameError", standard)
	s.DefineClass("FrozenError", standard)
	s.DefineClass("RangeError", standard)
}

// ObjectClass returns the root of the class hierarchy.
func (s *State) ObjectClass() *Class { return s.objectClass }

// register links a freshly allocated object into the heap and roots it in
// the arena so it survives until the surrounding savepoint is restored.
func (s *State) register(obj HeapObject) {
	s.gc.heap = append(s.gc.heap, obj)
	s.gc.live++
	s.gc.arena = append(s.gc.arena, obj)
}

// NewObject allocates a plain instance of class.
func (s *State) NewObject(class *Class) *Object {
	if class == nil {
		class = s.objectClass
	}
	obj := &Object{header: Header{kind: TagObject}, class: class}
	s.register(obj)
	return obj
}

// NewInstance allocates an instance of class, honoring the class's instance
// tag: classes bound to native data produce an uninitialized Data shell.
func (s *State) NewInstance(class *Class) Value {
	if class != nil && class.instanceTag == TagData {
		return ObjValue(s.NewData(class))
	}
	return ObjValue(s.NewObject(class))
}

// NewData allocates an uninitialized data shell for class. The host must
// call Init on the shell before handing the value to interpreter code.
func (s *State) NewData(class *Class) *Data {
	d := &Data{header: Header{kind: TagData}, class: class}
	if class != nil {
		d.dataType = class.dataType
	}
	s.register(d)
	return d
}

// NewArray allocates an array holding elems.
func (s *State) NewArray(elems ...Value) *Array {
	a := &Array{header: Header{kind: TagArray}}
	if len(elems) > 0 {
		a.elems = append(a.elems, elems...)
	}
	s.register(a)
	return a
}

// NewString allocates a string with the given contents.
func (s *State) NewString(str string) *String {
	obj := &String{header: Header{kind: TagString}, bytes: []byte(str)}
	s.register(obj)
	return obj
}

// NewRange allocates a begin/end range. exclusive excludes the end point.
func (s *State) NewRange(begin, end Value, exclusive bool) *Range {
	r := &Range{header: Header{kind: TagRange}, begin: begin, end: end, exclusive: exclusive}
	s.register(r)
	return r
}

// NewProc allocates a closure descriptor around body.
func (s *State) NewProc(arity int, body func(s *State, args []Value) Value) *Proc {
	p := &Proc{header: Header{kind: TagProc}, arity: arity, body: body}
	s.register(p)
	return p
}

// NewException allocates an exception instance of class carrying msg.
func (s *State) NewException(class *Class, msg string) *Exception {
	e := &Exception{header: Header{kind: TagException}, class: class, message: msg}
	s.register(e)
	return e
}

// Intern returns the symbol id for name, creating it on first use.
func (s *State) Intern(name string) Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	sym := Symbol(len(s.symbolNames))
	s.symbols[name] = sym
	s.symbolNames = append(s.symbolNames, name)
	return sym
}

// SymbolName resolves an interned id back to its name. The second return is
// false for ids this state never interned.
func (s *State) SymbolName(sym Symbol) (string, bool) {
	if int(sym) >= len(s.symbolNames) {
		return "", false
	}
	return s.symbolNames[sym], true
}

// SequenceLen is the generic tag-checked length accessor over the sequence
// kinds (arrays and strings).
func (s *State) SequenceLen(v Value) (int, error) {
	switch v.tag {
	case TagArray:
		a, err := v.AsArray()
		if err != nil {
			return 0, err
		}
		return a.Len(), nil
	case TagString:
		str, err := v.AsString()
		if err != nil {
			return 0, err
		}
		return str.Len(), nil
	}
	return 0, ErrNotASequence
}
