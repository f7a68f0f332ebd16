package model

// Component is the abstract model-layer element: it has a name, an
// optional parent Coupled, and ordered, name-indexed input/output ports.
// Atomic and Coupled both satisfy Component by embedding *Base and
// calling Base.AttachOwner(self) once at construction time.
type Component interface {
	Name() string
	Parent() *Coupled
	InPorts() []*Port
	OutPorts() []*Port
	GetInPort(name string) *Port
	GetOutPort(name string) *Port
	AddInPort(p *Port) error
	AddOutPort(p *Port) error
	InEmpty() bool
	OutEmpty() bool
	UsedInPorts() []*Port
	UsedOutPorts() []*Port
	Clear()

	// Initialize runs before a component's first simulation cycle.
	Initialize()
	// Exit runs after a component's last simulation cycle.
	Exit()

	setParent(*Coupled)
}

// Base implements the structural part of Component. It is embedded by
// both Atomic and Coupled, which must call AttachOwner(self) immediately
// after construction so that ports attached through this Base carry a
// back-pointer to the real component value rather than to Base itself.
type Base struct {
	name   string
	parent *Coupled
	owner  Component

	inPorts  []*Port
	outPorts []*Port
	inIndex  map[string]*Port
	outIndex map[string]*Port
}

// NewBase creates a Base with the given component name.
func NewBase(name string) *Base {
	return &Base{
		name:     name,
		inIndex:  make(map[string]*Port),
		outIndex: make(map[string]*Port),
	}
}

// AttachOwner records the concrete Component value that embeds this
// Base. It must be called exactly once, right after construction.
func (b *Base) AttachOwner(owner Component) { b.owner = owner }

func (b *Base) Name() string     { return b.name }
func (b *Base) Parent() *Coupled { return b.parent }

func (b *Base) setParent(c *Coupled) { b.parent = c }

func (b *Base) InPorts() []*Port  { return b.inPorts }
func (b *Base) OutPorts() []*Port { return b.outPorts }

func (b *Base) GetInPort(name string) *Port  { return b.inIndex[name] }
func (b *Base) GetOutPort(name string) *Port { return b.outIndex[name] }

// AddInPort attaches p as one of this component's input ports. It fails
// if the port is already attached elsewhere or its name collides with an
// existing input port.
func (b *Base) AddInPort(p *Port) error {
	if _, ok := b.inIndex[p.Name()]; ok {
		return ErrDuplicatePortName
	}
	if err := p.attach(b.owner); err != nil {
		return err
	}
	b.inIndex[p.Name()] = p
	b.inPorts = append(b.inPorts, p)
	return nil
}

// AddOutPort attaches p as one of this component's output ports.
func (b *Base) AddOutPort(p *Port) error {
	if _, ok := b.outIndex[p.Name()]; ok {
		return ErrDuplicatePortName
	}
	if err := p.attach(b.owner); err != nil {
		return err
	}
	b.outIndex[p.Name()] = p
	b.outPorts = append(b.outPorts, p)
	return nil
}

// InEmpty reports whether every input port is empty.
func (b *Base) InEmpty() bool {
	for _, p := range b.inPorts {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// OutEmpty reports whether every output port is empty.
func (b *Base) OutEmpty() bool {
	for _, p := range b.outPorts {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// UsedInPorts returns the subset of input ports that are non-empty.
func (b *Base) UsedInPorts() []*Port {
	return filterUsed(b.inPorts)
}

// UsedOutPorts returns the subset of output ports that are non-empty.
func (b *Base) UsedOutPorts() []*Port {
	return filterUsed(b.outPorts)
}

func filterUsed(ports []*Port) []*Port {
	used := make([]*Port, 0, len(ports))
	for _, p := range ports {
		if !p.IsEmpty() {
			used = append(used, p)
		}
	}
	return used
}

// Clear empties every input and output port of the component.
func (b *Base) Clear() {
	for _, p := range b.inPorts {
		p.Clear()
	}
	for _, p := range b.outPorts {
		p.Clear()
	}
}
