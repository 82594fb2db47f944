package vm

import "errors"

var (
	ErrTagMismatch   = errors.New("value tag mismatch")
	ErrNotASequence  = errors.New("value is not a sequence")
	ErrClassNotFound = errors.New("class not found")
	ErrNilObject     = errors.New("value carries a nil object reference")
)
