package model

// Flatten destructively simplifies c's interior, promoting every nested
// Atomic directly under c and composing away intermediate coupled
// boundaries, then returns the atomics and couplings that c's own parent
// (if any) must incorporate to keep the hierarchy's end-to-end value
// paths intact (spec.md §3 "Flattening invariant", §4.2).
//
// The algorithm is bottom-up: nested Coupled children are flattened
// first (recursively), their promoted atomics/couplings are folded into
// c, and only then does c compute what it must hand up to its own
// parent, by composing EIC-EIC, IC-EIC, EOC-IC and EOC-EOC pairs across
// the boundary c itself represents.
func (c *Coupled) Flatten() ([]Component, []*Coupling) {
	var newCompsUp []Component
	var newCoupsUp []*Coupling
	var oldComps []*Coupled

	// Indexed loop: atomics reparented into c below are appended to
	// c.components and must be visited too, so they are handed up.
	for i := 0; i < len(c.components); i++ {
		comp := c.components[i]
		if child, ok := comp.(*Coupled); ok {
			newCompsDown, newCoupsDown := child.Flatten()
			oldComps = append(oldComps, child)
			for _, nc := range newCompsDown {
				c.reparent(nc)
			}
			for _, coup := range newCoupsDown {
				// Types were already validated when these couplings were
				// first built; re-registering here only reclassifies them
				// under c now that their component now lives under c.
				_, _ = c.AddCoupling(coup.From, coup.To, coup.Host)
			}
		} else {
			newCompsUp = append(newCompsUp, comp)
		}
	}

	for _, oc := range oldComps {
		c.removeCouplingsOfChild(oc)
		c.removeComponent(oc)
	}

	if c.Parent() != nil {
		leftBridgeEIC := c.createLeftBridge(c.Parent().eic)
		newCoupsUp = append(newCoupsUp, c.completeLeftBridge(leftBridgeEIC)...)

		leftBridgeIC := c.createLeftBridge(c.Parent().ic)
		rightBridgeIC := c.createRightBridge(c.Parent().ic)
		newCoupsUp = append(newCoupsUp, c.completeLeftBridge(leftBridgeIC)...)
		newCoupsUp = append(newCoupsUp, c.completeRightBridge(rightBridgeIC)...)

		rightBridgeEOC := c.createRightBridge(c.Parent().eoc)
		newCoupsUp = append(newCoupsUp, c.completeRightBridge(rightBridgeEOC)...)

		for _, m := range c.ic {
			for _, coup := range m {
				newCoupsUp = append(newCoupsUp, coup)
			}
		}
	}

	return newCompsUp, newCoupsUp
}

// removeCouplingsOfChild strips every coupling in c's own EIC/IC/EOC sets
// that mentions one of child's ports, now that child is about to be
// removed from c.
func (c *Coupled) removeCouplingsOfChild(child *Coupled) {
	for _, p := range child.InPorts() {
		c.eic.removePort(p)
		c.ic.removePort(p)
	}
	for _, p := range child.OutPorts() {
		c.ic.removePort(p)
		c.eoc.removePort(p)
	}
}

// createLeftBridge maps each of c's own input ports to the list of
// source ports that feed it according to pc (a coupling set keyed by
// source port).
func (c *Coupled) createLeftBridge(pc portCouplings) map[*Port][]*Port {
	bridge := make(map[*Port][]*Port)
	for _, inPort := range c.InPorts() {
		for from, sinks := range pc {
			if _, ok := sinks[inPort]; ok {
				bridge[inPort] = append(bridge[inPort], from)
			}
		}
	}
	return bridge
}

// createRightBridge maps each of c's own output ports to the list of
// sink ports it feeds according to pc.
func (c *Coupled) createRightBridge(pc portCouplings) map[*Port][]*Port {
	bridge := make(map[*Port][]*Port)
	for _, outPort := range c.OutPorts() {
		if sinks, ok := pc[outPort]; ok {
			for to := range sinks {
				bridge[outPort] = append(bridge[outPort], to)
			}
		}
	}
	return bridge
}

// completeLeftBridge composes bridge (external source -> c's input port)
// with c's own EIC (c's input port -> grandchild input port), producing
// direct couplings from the external source to the grandchild.
func (c *Coupled) completeLeftBridge(bridge map[*Port][]*Port) []*Coupling {
	var out []*Coupling
	for _, sinks := range c.eic {
		for _, coup := range sinks {
			for _, from := range bridge[coup.From] {
				out = append(out, &Coupling{From: from, To: coup.To})
			}
		}
	}
	return out
}

// completeRightBridge composes c's own EOC (grandchild output port -> c's
// output port) with bridge (c's output port -> external sink), producing
// direct couplings from the grandchild to the external sink.
func (c *Coupled) completeRightBridge(bridge map[*Port][]*Port) []*Coupling {
	var out []*Coupling
	for _, sinks := range c.eoc {
		for _, coup := range sinks {
			for _, to := range bridge[coup.To] {
				out = append(out, &Coupling{From: coup.From, To: to})
			}
		}
	}
	return out
}
