package vm

import "fmt"

// Exception is a raised (or raisable) interpreter exception. It is a heap
// object like any other, and also a Go error so the Protect boundary can
// hand it to hosts directly.
type Exception struct {
	header  Header
	class   *Class
	message string
}

func (e *Exception) Header() *Header { return &e.header }

// Class returns the exception's class.
func (e *Exception) Class() *Class { return e.class }

// Message returns the exception message.
func (e *Exception) Message() string { return e.message }

// Error implements the error interface.
func (e *Exception) Error() string {
	if e.class != nil {
		return fmt.Sprintf("%s: %s", e.class.name, e.message)
	}
	return e.message
}

// IsA reports whether the exception's class is class or a descendant.
func (e *Exception) IsA(class *Class) bool {
	if e.class == nil || class == nil {
		return false
	}
	return e.class.SubclassOf(class)
}

// unwind is the panic payload used for the interpreter's non-local exit. It
// never escapes the package: Protect converts it back into an error.
type unwind struct {
	exc *Exception
}

// Raise throws an exception of class with the given message. Control does
// not return to the caller; the exception unwinds to the nearest Protect
// boundary and is stored in the pending-exception slot on the way out.
func (s *State) Raise(class *Class, msg string) {
	if class == nil {
		class = s.ClassGet("RuntimeError")
	}
	exc := s.NewException(class, msg)
	s.RaiseError(exc)
}

// Raisef is Raise with a formatted message. The class is resolved by name
// through the raising lookup, so an unbound name surfaces as NameError.
func (s *State) Raisef(className, format string, args ...any) {
	s.Raise(s.ClassGet(className), fmt.Sprintf(format, args...))
}

// RaiseError throws an existing exception object.
func (s *State) RaiseError(exc *Exception) {
	s.exc = exc
	panic(unwind{exc: exc})
}

// RaiseCurrent re-throws the pending exception. When no exception is
// pending this is a no-op and control returns normally. Embedders use it to
// propagate an exception that was captured across a foreign-call boundary
// back into interpreter control flow.
func (s *State) RaiseCurrent() {
	if s.exc != nil {
		panic(unwind{exc: s.exc})
	}
}

// Err returns the pending exception, or nil when none is pending.
func (s *State) Err() *Exception { return s.exc }

// ClearError discards the pending exception.
func (s *State) ClearError() { s.exc = nil }

// Protect runs fn inside an exception-catching boundary. A raise inside fn
// is converted into the returned error (the *Exception itself) and left in
// the pending slot; a normal return clears the slot and yields fn's value.
// Panics that are not interpreter raises propagate unchanged.
func (s *State) Protect(fn func(s *State) Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			uw, ok := r.(unwind)
			if !ok {
				panic(r)
			}
			result = Nil()
			err = uw.exc
		}
	}()

	result = fn(s)
	s.exc = nil
	return result, nil
}
