package model

import "errors"

// Structural errors, raised while a model is being assembled. They are
// always returned to the caller; building never continues past one.
var (
	ErrPortAlreadyAttached  = errors.New("xdevs: port already attached to a component")
	ErrDuplicatePortName    = errors.New("xdevs: duplicate port name")
	ErrComponentHasParent   = errors.New("xdevs: component already belongs to a coupled model")
	ErrCouplingShape        = errors.New("xdevs: coupling endpoints are not a legal EIC/IC/EOC shape")
	ErrCouplingTypeMismatch = errors.New("xdevs: coupling source type is not assignable to sink type")
	ErrCouplingNotFound     = errors.New("xdevs: coupling not found")
	ErrDuplicateCoupling    = errors.New("xdevs: coupling already registered between these ports")
)

// ErrTypeMismatch is returned by Port.Add/Extend when a value does not
// match the port's declared element type. It is a runtime type error
// (spec.md §7): reported to the caller on the direct Port.Add path, but
// logged and dropped on the kernel's injection path.
var ErrTypeMismatch = errors.New("xdevs: value type does not match port element type")

// ErrEndOfValues is the end-of-sequence signal returned by GetFirst when a
// port is empty.
var ErrEndOfValues = errors.New("xdevs: port has no values")
