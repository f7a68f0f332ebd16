package model

import "reflect"

// Port carries a typed bag of values for one simulation cycle. A Port is
// owned by exactly one Component (its parent), set once when the port is
// attached via Component.AddInPort/AddOutPort.
//
// The bag has two value sources: a direct queue of values added locally,
// and a secondary set of other ports whose values are also visible
// through this port. This is how the kernel implements coupling
// propagation without copying (spec.md §9): a sink port remembers the
// source port as a secondary value source, and iteration walks both.
type Port struct {
	name     string
	elemType reflect.Type // nil means untyped: any value is accepted
	parent   Component

	direct    []any
	secondary []*Port
}

// NewPort creates an untyped port: it accepts any value.
func NewPort(name string) *Port {
	return &Port{name: name}
}

// NewTypedPort creates a port whose Add/Extend calls are checked against
// element type T.
func NewTypedPort[T any](name string) *Port {
	var zero T
	return &Port{name: name, elemType: reflect.TypeOf(zero)}
}

// NewPortFromType creates a port whose element type is elemType, given
// as a reflect.Type rather than a generic parameter. This is for
// callers that only learn the desired element type at runtime (the
// model-document loader's port-synthesis rule, spec.md §6); elemType
// may be nil for an untyped port.
func NewPortFromType(name string, elemType reflect.Type) *Port {
	return &Port{name: name, elemType: elemType}
}

// Name returns the port's name, unique within its parent's input or
// output namespace.
func (p *Port) Name() string { return p.name }

// ElemType returns the port's declared element type, or nil if the port
// is untyped.
func (p *Port) ElemType() reflect.Type { return p.elemType }

// Parent returns the component that owns this port, or nil if the port
// has not been attached yet.
func (p *Port) Parent() Component { return p.parent }

// attach assigns the port's parent. It is an error to attach a port
// twice (spec.md §3 invariant: parent is assigned at most once).
func (p *Port) attach(owner Component) error {
	if p.parent != nil {
		return ErrPortAlreadyAttached
	}
	p.parent = owner
	return nil
}

func (p *Port) accepts(v any) bool {
	if p.elemType == nil {
		return true
	}
	vt := reflect.TypeOf(v)
	if vt == nil {
		return false
	}
	return vt.AssignableTo(p.elemType)
}

// Add appends a value to the port's direct bag. It fails with
// ErrTypeMismatch if the port is typed and v is not assignable to the
// declared element type.
func (p *Port) Add(v any) error {
	if !p.accepts(v) {
		return ErrTypeMismatch
	}
	p.direct = append(p.direct, v)
	return nil
}

// Extend adds every value in vals to the port's direct bag, stopping at
// the first type mismatch.
func (p *Port) Extend(vals []any) error {
	for _, v := range vals {
		if err := p.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// AttachSecondary registers another port as a secondary value source:
// iteration over p will also yield every value visible through other,
// after p's direct values, in the order secondaries were attached. A nil
// other, or one that is empty at the time of the call, is not attached.
func (p *Port) AttachSecondary(other *Port) {
	if other == nil || other.IsEmpty() {
		return
	}
	p.secondary = append(p.secondary, other)
}

// IsEmpty reports whether the port has no direct values and no
// non-empty secondary sources.
func (p *Port) IsEmpty() bool {
	if len(p.direct) > 0 {
		return false
	}
	for _, s := range p.secondary {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Len returns the total number of values observable through the port:
// direct values plus every value observable through its secondaries.
func (p *Port) Len() int {
	n := len(p.direct)
	for _, s := range p.secondary {
		n += s.Len()
	}
	return n
}

// Clear empties both the direct bag and the secondary set.
func (p *Port) Clear() {
	p.direct = nil
	p.secondary = nil
}

// GetFirst returns the first value observable on the port: the first
// direct value if any, otherwise the first value of the first non-empty
// secondary. It returns ErrEndOfValues if the port is empty.
func (p *Port) GetFirst() (any, error) {
	vals := p.IterateValues()
	if len(vals) == 0 {
		return nil, ErrEndOfValues
	}
	return vals[0], nil
}

// IterateValues returns the logical insertion-order concatenation of the
// port's direct values followed by the values reachable through each
// secondary port, in the order secondaries were attached. Duplicates are
// preserved.
func (p *Port) IterateValues() []any {
	out := make([]any, 0, p.Len())
	out = append(out, p.direct...)
	for _, s := range p.secondary {
		out = append(out, s.IterateValues()...)
	}
	return out
}
