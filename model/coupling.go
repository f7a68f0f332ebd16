package model

// Host is the optional remote endpoint a Coupling may delegate delivery
// to instead of linking port bags directly (spec.md §3, "a coupling's
// host is an optional external endpoint; when present, propagation
// serializes values and delegates delivery to that endpoint").
type Host interface {
	// Deliver hands values, already read off the coupling's source port,
	// to the remote endpoint addressed by toPort.
	Deliver(toPort *Port, values []any) error
}

// Coupling is a directed edge from one port to another, classified by
// Coupled.AddCoupling as EIC, IC or EOC depending on where its endpoints
// live relative to the coupled it was registered in.
type Coupling struct {
	From *Port
	To   *Port
	Host Host
}

// Propagate copies (or, with a Host set, forwards) values from From to
// To. With no Host, this attaches From as a secondary value source on To
// rather than copying values, so that later adds to From remain visible
// through To for the rest of the cycle.
func (c *Coupling) Propagate() error {
	if c.Host != nil {
		return c.Host.Deliver(c.To, c.From.IterateValues())
	}
	c.To.AttachSecondary(c.From)
	return nil
}

func typesCompatible(from, to *Port) bool {
	if from.ElemType() == nil || to.ElemType() == nil {
		return true
	}
	return from.ElemType().AssignableTo(to.ElemType())
}
