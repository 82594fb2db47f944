// Package starlark converts interpreter values to and from Starlark values,
// for hosts that hand interpreter data to a Starlark program or read
// Starlark results back into the interpreter.
package starlark

import (
	"errors"
	"fmt"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-vmbridge/vm"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for conversion")
	ErrIntOutOfRange   = errors.New("integer out of int64 range")
)

// ToStarlark converts an interpreter value into its Starlark equivalent.
// Symbols convert to their interned names. Heap kinds without a Starlark
// counterpart (classes, procs, data shells, ranges) are rejected.
func ToStarlark(s *vm.State, v vm.Value) (starlarkLib.Value, error) {
	switch v.Tag() {
	case vm.TagNil:
		return starlarkLib.None, nil
	case vm.TagFalse:
		return starlarkLib.Bool(false), nil
	case vm.TagTrue:
		return starlarkLib.Bool(true), nil
	case vm.TagFixnum:
		n, err := v.AsFixnum()
		if err != nil {
			return nil, err
		}
		return starlarkLib.MakeInt64(n), nil
	case vm.TagFloat:
		f, err := v.AsFloat()
		if err != nil {
			return nil, err
		}
		return starlarkLib.Float(f), nil
	case vm.TagSymbol:
		sym, err := v.AsSymbol()
		if err != nil {
			return nil, err
		}
		name, ok := s.SymbolName(sym)
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol id %d", ErrUnsupportedType, sym)
		}
		return starlarkLib.String(name), nil
	case vm.TagString:
		str, err := v.AsString()
		if err != nil {
			return nil, err
		}
		return starlarkLib.String(str.Value()), nil
	case vm.TagArray:
		a, err := v.AsArray()
		if err != nil {
			return nil, err
		}
		elems := make([]starlarkLib.Value, 0, a.Len())
		for _, elem := range a.Elems() {
			converted, err := ToStarlark(s, elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, converted)
		}
		return starlarkLib.NewList(elems), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, v.Tag())
}

// FromStarlark converts a Starlark value into an interpreter value. Heap
// results are allocated through s and therefore arena-rooted; callers
// bracket conversion sequences with an arena savepoint as usual.
func FromStarlark(s *vm.State, v starlarkLib.Value) (vm.Value, error) {
	switch sv := v.(type) {
	case nil, starlarkLib.NoneType:
		return vm.Nil(), nil
	case starlarkLib.Bool:
		return vm.Bool(bool(sv)), nil
	case starlarkLib.Int:
		n, ok := sv.Int64()
		if !ok {
			return vm.Nil(), fmt.Errorf("%w: %s", ErrIntOutOfRange, sv.String())
		}
		return vm.Fixnum(n), nil
	case starlarkLib.Float:
		return vm.Float(float64(sv)), nil
	case starlarkLib.String:
		return vm.ObjValue(s.NewString(string(sv))), nil
	case *starlarkLib.List:
		elems := make([]vm.Value, 0, sv.Len())
		for i := 0; i < sv.Len(); i++ {
			converted, err := FromStarlark(s, sv.Index(i))
			if err != nil {
				return vm.Nil(), err
			}
			elems = append(elems, converted)
		}
		return vm.ObjValue(s.NewArray(elems...)), nil
	case starlarkLib.Tuple:
		elems := make([]vm.Value, 0, len(sv))
		for _, item := range sv {
			converted, err := FromStarlark(s, item)
			if err != nil {
				return vm.Nil(), err
			}
			elems = append(elems, converted)
		}
		return vm.ObjValue(s.NewArray(elems...)), nil
	}
	return vm.Nil(), fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
}
