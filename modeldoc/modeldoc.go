// Package modeldoc builds a model.Coupled from a nested structured
// document (spec.md §6 "Model declaration via structured document"),
// grounded on the teacher's core.LoadProgramFileFromYAML pattern of
// loading an external YAML program description into a live model
// object. Leaf nodes are resolved through the registry package's
// atomic-factory table.
package modeldoc

import (
	"encoding/json"
	"sort"

	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/registry"
	"gopkg.in/yaml.v3"
)

// ConnectionDoc is one coupling entry within a coupled node's
// "connections" list. Exactly one of ComponentFrom/ComponentTo may be
// omitted, classifying the connection per spec.md §6:
//
//	both present        -> internal coupling
//	only ComponentTo     -> external input coupling (PortFrom names the
//	                         parent's own input port)
//	only ComponentFrom    -> external output coupling (PortTo names the
//	                         parent's own output port)
//	neither present      -> error
type ConnectionDoc struct {
	ComponentFrom string `yaml:"componentFrom,omitempty" json:"componentFrom,omitempty"`
	PortFrom      string `yaml:"portFrom" json:"portFrom"`
	ComponentTo   string `yaml:"componentTo,omitempty" json:"componentTo,omitempty"`
	PortTo        string `yaml:"portTo" json:"portTo"`
}

// NodeDoc is one node of the document tree: either a coupled (non-empty
// Components) or a leaf (non-empty ComponentID).
type NodeDoc struct {
	ComponentID string             `yaml:"component_id,omitempty" json:"component_id,omitempty"`
	Args        []any              `yaml:"args,omitempty" json:"args,omitempty"`
	Kwargs      map[string]any     `yaml:"kwargs,omitempty" json:"kwargs,omitempty"`
	Components  map[string]NodeDoc `yaml:"components,omitempty" json:"components,omitempty"`
	Connections []ConnectionDoc    `yaml:"connections,omitempty" json:"connections,omitempty"`
}

func (n NodeDoc) isLeaf() bool { return n.ComponentID != "" }

// LoadYAML parses data as a NodeDoc and builds the root coupled model
// named rootName from it.
func LoadYAML(rootName string, data []byte) (*model.Coupled, error) {
	var doc NodeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errParse(err)
	}
	return buildCoupled(rootName, doc)
}

// LoadJSON parses data as a NodeDoc and builds the root coupled model
// named rootName from it.
func LoadJSON(rootName string, data []byte) (*model.Coupled, error) {
	var doc NodeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errParse(err)
	}
	return buildCoupled(rootName, doc)
}

func buildComponent(name string, node NodeDoc) (model.Component, error) {
	if node.isLeaf() {
		return buildLeaf(name, node)
	}
	return buildCoupled(name, node)
}

func buildLeaf(name string, node NodeDoc) (model.Component, error) {
	ctor, err := registry.Atomics.Lookup(node.ComponentID)
	if err != nil {
		return nil, err
	}
	return ctor(name, node.Args, node.Kwargs)
}

func buildCoupled(name string, node NodeDoc) (*model.Coupled, error) {
	coupled := model.NewCoupled(name)

	for _, childName := range sortedKeys(node.Components) {
		child, err := buildComponent(childName, node.Components[childName])
		if err != nil {
			return nil, err
		}
		if err := coupled.AddComponent(child); err != nil {
			return nil, err
		}
	}

	for _, conn := range node.Connections {
		if err := wireConnection(coupled, conn); err != nil {
			return nil, err
		}
	}

	return coupled, nil
}

func wireConnection(coupled *model.Coupled, conn ConnectionDoc) error {
	switch {
	case conn.ComponentFrom != "" && conn.ComponentTo != "":
		from, err := lookupOutPort(coupled, conn.ComponentFrom, conn.PortFrom)
		if err != nil {
			return err
		}
		to, err := lookupInPort(coupled, conn.ComponentTo, conn.PortTo)
		if err != nil {
			return err
		}
		_, err = coupled.AddCoupling(from, to, nil)
		return err

	case conn.ComponentTo != "":
		to, err := lookupInPort(coupled, conn.ComponentTo, conn.PortTo)
		if err != nil {
			return err
		}
		from := coupled.GetInPort(conn.PortFrom)
		if from == nil {
			from = model.NewPortFromType(conn.PortFrom, to.ElemType())
			if err := coupled.AddInPort(from); err != nil {
				return err
			}
		}
		_, err = coupled.AddCoupling(from, to, nil)
		return err

	case conn.ComponentFrom != "":
		from, err := lookupOutPort(coupled, conn.ComponentFrom, conn.PortFrom)
		if err != nil {
			return err
		}
		to := coupled.GetOutPort(conn.PortTo)
		if to == nil {
			to = model.NewPortFromType(conn.PortTo, from.ElemType())
			if err := coupled.AddOutPort(to); err != nil {
				return err
			}
		}
		_, err = coupled.AddCoupling(from, to, nil)
		return err

	default:
		return errMissingEndpoints(conn.PortFrom, conn.PortTo)
	}
}

func lookupOutPort(coupled *model.Coupled, componentName, portName string) (*model.Port, error) {
	child := findComponent(coupled, componentName)
	if child == nil {
		return nil, errUnknownComponent(componentName)
	}
	port := child.GetOutPort(portName)
	if port == nil {
		return nil, errUnknownPortName(componentName, portName)
	}
	return port, nil
}

func lookupInPort(coupled *model.Coupled, componentName, portName string) (*model.Port, error) {
	child := findComponent(coupled, componentName)
	if child == nil {
		return nil, errUnknownComponent(componentName)
	}
	port := child.GetInPort(portName)
	if port == nil {
		return nil, errUnknownPortName(componentName, portName)
	}
	return port, nil
}

func findComponent(coupled *model.Coupled, name string) model.Component {
	for _, c := range coupled.Components() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func sortedKeys(m map[string]NodeDoc) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
