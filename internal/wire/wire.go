// Package wire holds the strict-object helpers shared by the message
// taxonomies: discriminant lookup and required-key checks on top of
// encoding/json, which on its own accepts objects with missing keys.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a record is not a JSON object.
var ErrNotObject = errors.New("record is not a JSON object")

// Object is a decoded JSON object with its values left raw.
type Object map[string]json.RawMessage

// Parse decodes data as a single JSON object.
func Parse(data []byte) (Object, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var obj Object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Tag returns the string value of the discriminant key.
func (o Object) Tag(key string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return tag, nil
}

// Require reports the first key in names that is absent from o or null.
// encoding/json would otherwise leave the field at its zero value.
func (o Object) Require(names ...string) error {
	for _, name := range names {
		raw, ok := o[name]
		if !ok {
			return fmt.Errorf("missing field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), null) {
			return fmt.Errorf("field %q is null", name)
		}
	}
	return nil
}

var null = []byte("null")

// NonNil returns s, or an empty slice when s is nil, so that a required
// list encodes as [] rather than null.
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Decode checks the required keys and then unmarshals data into v.
func Decode(data []byte, v any, required ...string) error {
	obj, err := Parse(data)
	if err != nil {
		return err
	}
	if err := obj.Require(required...); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Tagged marshals v and prepends the discriminant pairs, in order.
// v must marshal to a JSON object.
func Tagged(v any, pairs ...string) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, ErrNotObject
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(pairs[i])
		v, _ := json.Marshal(pairs[i+1])
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	rest := body[1:]
	if len(pairs) >= 2 && rest[0] != '}' {
		buf.WriteByte(',')
	}
	buf.Write(rest)
	return buf.Bytes(), nil
}
