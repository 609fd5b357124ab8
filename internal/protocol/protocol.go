// Package protocol defines the marketplace wire format: every message in
// either direction is a single JSON object terminated by a line feed. A
// request carries a "type" tag naming the operation; the response carries
// the matching "<type>_response" tag, or "error" for an unrecognized
// request. Requests decode in two steps: the envelope extracts the tag,
// then the raw payload binds onto the typed variant for that tag.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject reports a line that decodes to valid JSON but is not a keyed
// object. The connection server drops such lines silently.
var ErrNotObject = errors.New("message is not a JSON object")

// Envelope is a decoded request before binding: the type tag plus the raw
// payload bytes.
type Envelope struct {
	Type string
	raw  json.RawMessage
}

// DecodeRequest parses one framed line into an envelope. It fails only when
// the line is not a keyed JSON object. An object with a missing or
// non-string "type" field still decodes, with an empty Type; the router
// answers it like any other unrecognized request.
func DecodeRequest(line []byte) (Envelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(line, &probe); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}

	var typ string
	if rawType, ok := probe["type"]; ok {
		// A non-string tag counts the same as no tag.
		_ = json.Unmarshal(rawType, &typ)
	}

	return Envelope{Type: typ, raw: json.RawMessage(line)}, nil
}

// Bind unmarshals the envelope's payload onto the typed request variant.
// Unknown fields are ignored; missing fields keep their zero values and are
// caught by validation in the router.
func (e Envelope) Bind(v any) error {
	if err := json.Unmarshal(e.raw, v); err != nil {
		return fmt.Errorf("bind %s request: %w", e.Type, err)
	}
	return nil
}

// EncodeResponse marshals a response message for the wire, without the
// trailing line feed (the connection server appends it).
func EncodeResponse(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return data, nil
}
