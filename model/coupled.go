package model

// portCouplings indexes a coupling set by source port, then by sink
// port, mirroring the EIC/IC/EOC dict-of-dicts structure of the original
// implementation so that propagation by source port is O(1) and removal
// by (from, to) pair is direct.
type portCouplings map[*Port]map[*Port]*Coupling

func (pc portCouplings) add(c *Coupling) {
	m, ok := pc[c.From]
	if !ok {
		m = make(map[*Port]*Coupling)
		pc[c.From] = m
	}
	m[c.To] = c
}

// contains reports whether a coupling from -> to is already registered.
func (pc portCouplings) contains(from, to *Port) bool {
	m, ok := pc[from]
	if !ok {
		return false
	}
	_, ok = m[to]
	return ok
}

func (pc portCouplings) remove(from, to *Port) bool {
	m, ok := pc[from]
	if !ok {
		return false
	}
	if _, ok := m[to]; !ok {
		return false
	}
	delete(m, to)
	if len(m) == 0 {
		delete(pc, from)
	}
	return true
}

// removePort drops every coupling that mentions port, either as the
// source (the whole bucket) or as a sink in any remaining bucket.
func (pc portCouplings) removePort(port *Port) {
	delete(pc, port)
	for from, m := range pc {
		delete(m, port)
		if len(m) == 0 {
			delete(pc, from)
		}
	}
}

// Coupled is a container component composing sub-components via typed
// port couplings (spec.md §3, §4.2).
type Coupled struct {
	*Base

	components []Component

	eic portCouplings // parent input port -> child input port
	ic  portCouplings // child output port -> child input port
	eoc portCouplings // child output port -> parent output port
}

// NewCoupled creates an empty coupled model.
func NewCoupled(name string) *Coupled {
	c := &Coupled{
		Base: NewBase(name),
		eic:  make(portCouplings),
		ic:   make(portCouplings),
		eoc:  make(portCouplings),
	}
	c.AttachOwner(c)
	return c
}

// Initialize is a no-op for coupled models; only Atomic implementers
// define behavior here.
func (c *Coupled) Initialize() {}

// Exit is a no-op for coupled models.
func (c *Coupled) Exit() {}

// Components returns the coupled's sub-components in insertion order.
func (c *Coupled) Components() []Component { return c.components }

// AddComponent adds comp as a sub-component, setting comp's parent to c.
// It fails if comp already belongs to another coupled model.
func (c *Coupled) AddComponent(comp Component) error {
	if comp.Parent() != nil {
		return ErrComponentHasParent
	}
	comp.setParent(c)
	c.components = append(c.components, comp)
	return nil
}

// reparent is used only by Flatten to promote a grandchild directly
// under c, bypassing AddComponent's already-has-a-parent check (the
// grandchild's old parent is being destroyed in the same pass).
func (c *Coupled) reparent(comp Component) {
	comp.setParent(c)
	c.components = append(c.components, comp)
}

func (c *Coupled) containsComponent(comp Component) bool {
	for _, existing := range c.components {
		if existing == comp {
			return true
		}
	}
	return false
}

func (c *Coupled) removeComponent(comp Component) {
	for i, existing := range c.components {
		if existing == comp {
			c.components = append(c.components[:i], c.components[i+1:]...)
			return
		}
	}
}

// AddCoupling classifies (from, to) into EIC/IC/EOC by inspecting the
// ports' parents against c and c's sub-components, and registers it. It
// rejects pairs that are not one of those three legal shapes, and pairs
// whose element types are incompatible.
func (c *Coupled) AddCoupling(from, to *Port, host Host) (*Coupling, error) {
	if !typesCompatible(from, to) {
		return nil, ErrCouplingTypeMismatch
	}

	var set portCouplings
	switch {
	case from.Parent() == c && c.containsComponent(to.Parent()):
		set = c.eic
	case c.containsComponent(from.Parent()) && to.Parent() == c:
		set = c.eoc
	case c.containsComponent(from.Parent()) && c.containsComponent(to.Parent()):
		set = c.ic
	default:
		return nil, ErrCouplingShape
	}

	if set.contains(from, to) {
		return nil, ErrDuplicateCoupling
	}

	coup := &Coupling{From: from, To: to, Host: host}
	set.add(coup)
	return coup, nil
}

// RemoveCoupling searches EIC, EOC and IC (in that order) for coup and
// removes it. It errors if the coupling is not registered in c.
func (c *Coupled) RemoveCoupling(coup *Coupling) error {
	for _, set := range []portCouplings{c.eic, c.eoc, c.ic} {
		if set.remove(coup.From, coup.To) {
			return nil
		}
	}
	return ErrCouplingNotFound
}

// EIC returns the couplings registered as external input couplings,
// indexed by parent input port.
func (c *Coupled) EIC() map[*Port]map[*Port]*Coupling { return c.eic }

// IC returns the couplings registered as internal couplings, indexed by
// child output port.
func (c *Coupled) IC() map[*Port]map[*Port]*Coupling { return c.ic }

// EOC returns the couplings registered as external output couplings,
// indexed by child output port.
func (c *Coupled) EOC() map[*Port]map[*Port]*Coupling { return c.eoc }
