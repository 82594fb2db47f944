package vm

// DefineClass registers a class named name under super. Redefining an
// existing name returns the already-registered descriptor unchanged, so
// boot code and host registration can both run idempotently.
func (s *State) DefineClass(name string, super *Class) *Class {
	if existing, ok := s.classes[name]; ok {
		return existing
	}
	if super == nil && s.objectClass != nil {
		super = s.objectClass
	}
	c := &Class{
		header:      Header{kind: TagClass},
		name:        name,
		super:       super,
		instanceTag: TagObject,
	}
	s.classes[name] = c
	return c
}

// DefineModule registers a module named name.
func (s *State) DefineModule(name string) *Class {
	if existing, ok := s.classes[name]; ok {
		return existing
	}
	c := &Class{
		header: Header{kind: TagModule},
		name:   name,
		module: true,
	}
	s.classes[name] = c
	return c
}

// Lookup returns the class or module registered under name without raising.
func (s *State) Lookup(name string) (*Class, bool) {
	c, ok := s.classes[name]
	return c, ok
}

// ClassGet returns the class registered under name, raising NameError when
// the name is unbound. This is the raising path the bridge and embedders
// use when the caller asserted the class exists.
func (s *State) ClassGet(name string) *Class {
	c, ok := s.classes[name]
	if !ok {
		s.Raisef("NameError", "uninitialized constant %s", name)
	}
	return c
}

// ClassCount returns the number of registered classes and modules.
func (s *State) ClassCount() int { return len(s.classes) }
