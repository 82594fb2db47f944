package vm

// The unchecked accessor tier: raw payload reads with no tag verification,
// used by the bridge package's extraction functions. Callers must have
// verified the tag by protocol. Reading the wrong payload field returns
// whatever the union slot holds (the zero value for a slot the tag never
// set), the same contract as reading the wrong member of a C union.

// UncheckedFixnum returns the integer payload slot.
func (v Value) UncheckedFixnum() int64 { return v.num }

// UncheckedFloat returns the floating-point payload slot.
func (v Value) UncheckedFloat() float64 { return v.fnum }

// UncheckedSymbol returns the symbol-id payload slot.
func (v Value) UncheckedSymbol() Symbol { return Symbol(v.num) }

// UncheckedCPtr returns the opaque-pointer payload slot.
func (v Value) UncheckedCPtr() any { return v.cptr }
