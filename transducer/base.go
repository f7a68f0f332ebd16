package transducer

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/rs/xid"
	"github.com/sarchlab/xdevs/model"
)

// StatefulAtomic is implemented by every concrete atomic built on
// model.Atomic: it exposes the two default state fields (phase, sigma)
// that every state record carries unless the field is dropped.
type StatefulAtomic interface {
	model.Component
	Phase() string
	Sigma() float64
}

// FieldSpec is one extra transducer field: a declared type (used only to
// decide whether the value needs string coercion) and a getter.
type FieldSpec struct {
	Type reflect.Type
	Get  func(target any) any
}

// BulkFunc receives the batch of records produced by one Trigger call.
// Concrete transducers (SQLite-backed, table-rendering, ...) are just a
// Base plus a BulkFunc.
type BulkFunc func(simTime float64, records []Record) error

// Base implements the common machinery shared by every concrete
// Transducer: target bookkeeping, exhaustive/incremental imminence
// tracking, field mapping, and special-number sanitization.
type Base struct {
	ID           string
	SimTimeID    string
	IncludeNames bool
	ModelNameID  string
	PortNameID   string
	RunIDField   string
	RecordIDField string
	Exhaustive   bool
	Logger       *slog.Logger

	// runID identifies this transducer's run; it is generated once, at
	// construction, and stamped onto every record it emits so output
	// from multiple runs (e.g. rows in the same SQLite table) can be
	// told apart without a database-side sequence.
	runID string

	active bool

	targetComponents map[model.Component]struct{}
	targetPorts      map[*model.Port]struct{}

	imminentComponents []model.Component
	imminentPorts      []*model.Port

	stateFields map[string]FieldSpec
	eventFields map[string]FieldSpec

	supportedTypes       map[reflect.Type]struct{}
	removeSpecialNumbers bool

	bulk BulkFunc
}

// defaultSupportedTypes are the value types that need no string
// coercion before being handed to a concrete transducer's backend.
func defaultSupportedTypes() map[reflect.Type]struct{} {
	types := []reflect.Type{
		reflect.TypeOf(""),
		reflect.TypeOf(int(0)),
		reflect.TypeOf(int64(0)),
		reflect.TypeOf(float64(0)),
		reflect.TypeOf(bool(false)),
	}
	set := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// NewBase creates a Base with the default state fields "phase" and
// "sigma" and a default event field "value" whose getter stringifies the
// raw port value (xDEVS's `{'value': (str, lambda x: str(x))}` default).
func NewBase(id string, exhaustive bool, bulk BulkFunc) *Base {
	b := &Base{
		ID:            id,
		SimTimeID:     "sim_time",
		IncludeNames:  true,
		ModelNameID:   "model_name",
		PortNameID:    "port_name",
		RunIDField:    "run_id",
		RecordIDField: "record_id",
		runID:         xid.New().String(),
		Exhaustive:    exhaustive,
		Logger:        slog.Default(),
		active:        true,
		targetComponents: make(map[model.Component]struct{}),
		targetPorts:      make(map[*model.Port]struct{}),
		stateFields:      make(map[string]FieldSpec),
		eventFields:      make(map[string]FieldSpec),
		supportedTypes:   defaultSupportedTypes(),
		bulk:             bulk,
	}
	if !exhaustive {
		b.imminentComponents = []model.Component{}
		b.imminentPorts = []*model.Port{}
	}
	b.stateFields["phase"] = FieldSpec{Type: reflect.TypeOf(""), Get: func(t any) any {
		return t.(StatefulAtomic).Phase()
	}}
	b.stateFields["sigma"] = FieldSpec{Type: reflect.TypeOf(float64(0)), Get: func(t any) any {
		return t.(StatefulAtomic).Sigma()
	}}
	b.eventFields["value"] = FieldSpec{Type: reflect.TypeOf(""), Get: func(t any) any {
		return stringify(t)
	}}
	return b
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}

func anyToString(v any) string {
	return fmt.Sprintf("%v", v)
}

// ActivateRemoveSpecialNumbers makes int/float fields holding NaN or Inf
// render as nil instead.
func (b *Base) ActivateRemoveSpecialNumbers() {
	b.Logger.Warn("transducer does not support special number values; substituting with nil",
		"transducer_id", b.ID)
	b.removeSpecialNumbers = true
}

// AddTargetComponent registers every Atomic reachable under comp
// (comp itself if it is already an Atomic) as a state-sampling target.
func (b *Base) AddTargetComponent(comp model.Component) {
	for _, atomic := range collectAtomics(comp) {
		b.targetComponents[atomic] = struct{}{}
	}
}

func collectAtomics(comp model.Component) []model.Component {
	if coupled, ok := comp.(*model.Coupled); ok {
		var out []model.Component
		for _, child := range coupled.Components() {
			out = append(out, collectAtomics(child)...)
		}
		return out
	}
	return []model.Component{comp}
}

// AddTargetPort registers port as an event-sampling target.
func (b *Base) AddTargetPort(port *model.Port) {
	b.targetPorts[port] = struct{}{}
}

// AddImminentComponent records comp as having transitioned this cycle;
// a no-op in exhaustive mode or while paused.
func (b *Base) AddImminentComponent(comp model.Component) {
	if !b.Exhaustive && b.active {
		if _, tracked := b.targetComponents[comp]; tracked {
			b.imminentComponents = append(b.imminentComponents, comp)
		}
	}
}

// AddImminentPort records port as having carried events this cycle; a
// no-op in exhaustive mode or while paused.
func (b *Base) AddImminentPort(port *model.Port) {
	if !b.Exhaustive && b.active {
		if _, tracked := b.targetPorts[port]; tracked {
			b.imminentPorts = append(b.imminentPorts, port)
		}
	}
}

// AddStateField adds an extra state field. It errors if the field name
// collides with the reserved time/name fields or an existing field.
func (b *Base) AddStateField(name string, typ reflect.Type, get func(target any) any) error {
	if err := b.checkReservedStateField(name); err != nil {
		return err
	}
	if _, exists := b.stateFields[name]; exists {
		return errFieldExists(name)
	}
	b.stateFields[name] = FieldSpec{Type: typ, Get: get}
	return nil
}

// AddEventField adds an extra event field, with the same reservation
// rules as AddStateField.
func (b *Base) AddEventField(name string, typ reflect.Type, get func(target any) any) error {
	if err := b.checkReservedEventField(name); err != nil {
		return err
	}
	if _, exists := b.eventFields[name]; exists {
		return errFieldExists(name)
	}
	b.eventFields[name] = FieldSpec{Type: typ, Get: get}
	return nil
}

func (b *Base) checkReservedStateField(name string) error {
	if name == b.SimTimeID || name == b.RunIDField || name == b.RecordIDField {
		return errReservedField(name)
	}
	if b.IncludeNames && name == b.ModelNameID {
		return errReservedField(name)
	}
	return nil
}

func (b *Base) checkReservedEventField(name string) error {
	if name == b.SimTimeID || name == b.RunIDField || name == b.RecordIDField {
		return errReservedField(name)
	}
	if b.IncludeNames && (name == b.ModelNameID || name == b.PortNameID) {
		return errReservedField(name)
	}
	return nil
}

// Pause stops AddImminent* calls from recording anything until Resume.
func (b *Base) Pause() { b.active = false }

// Resume re-enables imminence tracking.
func (b *Base) Resume() { b.active = true }

func (b *Base) TargetComponents() map[model.Component]struct{} { return b.targetComponents }
func (b *Base) TargetPorts() map[*model.Port]struct{}          { return b.targetPorts }

// Trigger builds this cycle's state and event records and hands them to
// the concrete transducer's BulkFunc, then (in incremental mode) clears
// the imminence lists.
func (b *Base) Trigger(simTime float64) error {
	if !b.active {
		return nil
	}
	records := append(b.stateRecords(simTime), b.eventRecords(simTime)...)
	if err := b.bulk(simTime, records); err != nil {
		return err
	}
	if !b.Exhaustive {
		b.imminentComponents = b.imminentComponents[:0]
		b.imminentPorts = b.imminentPorts[:0]
	}
	return nil
}

func (b *Base) stateRecords(simTime float64) []Record {
	components := b.imminentComponents
	if b.Exhaustive {
		components = mapKeys(b.targetComponents)
	}
	records := make([]Record, 0, len(components))
	for _, comp := range components {
		rec := Record{b.SimTimeID: simTime, b.RunIDField: b.runID, b.RecordIDField: xid.New().String()}
		if b.IncludeNames {
			rec[b.ModelNameID] = comp.Name()
		}
		for name, spec := range b.stateFields {
			rec[name] = b.coerce(spec, comp)
		}
		records = append(records, rec)
	}
	return records
}

func (b *Base) eventRecords(simTime float64) []Record {
	ports := b.imminentPorts
	if b.Exhaustive {
		ports = mapPortKeys(b.targetPorts)
	}
	var records []Record
	for _, port := range ports {
		for _, v := range port.IterateValues() {
			rec := Record{b.SimTimeID: simTime, b.RunIDField: b.runID, b.RecordIDField: xid.New().String()}
			if b.IncludeNames {
				if parent := port.Parent(); parent != nil {
					rec[b.ModelNameID] = parent.Name()
				}
				rec[b.PortNameID] = port.Name()
			}
			for name, spec := range b.eventFields {
				rec[name] = b.coerce(spec, v)
			}
			records = append(records, rec)
		}
	}
	return records
}

func (b *Base) coerce(spec FieldSpec, target any) any {
	v := spec.Get(target)
	if _, known := b.supportedTypes[spec.Type]; !known {
		return anyToString(v)
	}
	if b.removeSpecialNumbers {
		if f, ok := toFloat(v); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil
		}
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func mapKeys(m map[model.Component]struct{}) []model.Component {
	out := make([]model.Component, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func mapPortKeys(m map[*model.Port]struct{}) []*model.Port {
	out := make([]*model.Port, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
