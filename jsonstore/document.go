/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-openapi/strfmt"
)

// TypeField is the discriminant key embedded in every encoded document.
const TypeField = "__type"

// Document is an insertion-ordered mapping with an optional type discriminant.
// A document with a non-empty type name represents an encoded object; a
// document with an empty type name is a plain mapping (e.g. run metadata).
//
// JSON marshaling writes the discriminant first, then the remaining fields in
// insertion order. Unmarshaling preserves the order found on the wire.
type Document struct {
	typeName string
	keys     []string
	fields   map[string]any
}

// NewDocument creates an empty document with the given discriminant.
// Pass "" for a plain mapping.
func NewDocument(typeName string) *Document {
	return &Document{
		typeName: typeName,
		fields:   make(map[string]any),
	}
}

// TypeName returns the document's discriminant ("" for plain mappings).
func (d *Document) TypeName() string { return d.typeName }

// SetTypeName replaces the document's discriminant.
func (d *Document) SetTypeName(name string) { d.typeName = name }

// Set stores a field value, preserving the original position of existing keys.
// Returns the document for chaining.
func (d *Document) Set(key string, value any) *Document {
	if _, exists := d.fields[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = value
	return d
}

// Get returns a field value and whether the key is present.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Value returns a field value, or nil when absent.
func (d *Document) Value(key string) any { return d.fields[key] }

// Has reports whether the key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Keys returns the field keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of fields (excluding the discriminant).
func (d *Document) Len() int { return len(d.keys) }

// Typed accessors used by decode functions. Each returns an error for a
// missing key or a value of the wrong kind, so decoding fails before a
// partially constructed object can escape.

// String returns a string-valued field.
func (d *Document) String(key string) (string, error) {
	v, ok := d.fields[key]
	if !ok {
		return "", fmt.Errorf("document %q: missing field %q", d.typeName, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("document %q: field %q is %T, want string", d.typeName, key, v)
	}
	return s, nil
}

// Bool returns a bool-valued field.
func (d *Document) Bool(key string) (bool, error) {
	v, ok := d.fields[key]
	if !ok {
		return false, fmt.Errorf("document %q: missing field %q", d.typeName, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("document %q: field %q is %T, want bool", d.typeName, key, v)
	}
	return b, nil
}

// Float returns a numeric field as float64.
func (d *Document) Float(key string) (float64, error) {
	v, ok := d.fields[key]
	if !ok {
		return 0, fmt.Errorf("document %q: missing field %q", d.typeName, key)
	}
	f, ok := asNumber(v)
	if !ok {
		return 0, fmt.Errorf("document %q: field %q is %T, want number", d.typeName, key, v)
	}
	return f, nil
}

// Int returns a numeric field as int, rejecting fractional values.
func (d *Document) Int(key string) (int, error) {
	f, err := d.Float(key)
	if err != nil {
		return 0, err
	}
	i := int(f)
	if float64(i) != f {
		return 0, fmt.Errorf("document %q: field %q is not an integer", d.typeName, key)
	}
	return i, nil
}

// OptionalInt returns a numeric field as *int; missing or null yields nil.
func (d *Document) OptionalInt(key string) (*int, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	i, err := d.Int(key)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// OptionalDateTime returns an RFC3339 string field parsed as *strfmt.DateTime;
// missing or null yields nil.
func (d *Document) OptionalDateTime(key string) (*strfmt.DateTime, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("document %q: field %q is %T, want datetime string", d.typeName, key, v)
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return nil, fmt.Errorf("document %q: field %q: %w", d.typeName, key, err)
	}
	return &dt, nil
}

// Slice returns a sequence-valued field; missing or null yields nil.
func (d *Document) Slice(key string) ([]any, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("document %q: field %q is %T, want sequence", d.typeName, key, v)
	}
	return s, nil
}

// StringMap returns a plain-mapping field as map[string]any; missing or null
// yields nil. Used for fields that hold free-form metadata.
func (d *Document) StringMap(key string) (map[string]any, error) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document %q: field %q is %T, want mapping", d.typeName, key, v)
	}
	return m, nil
}

func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// MarshalJSON writes the discriminant first, then fields in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeField := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshaling field %q: %w", key, err)
		}
		buf.Write(v)
		return nil
	}
	if d.typeName != "" {
		if err := writeField(TypeField, d.typeName); err != nil {
			return nil, err
		}
	}
	for _, key := range d.keys {
		if err := writeField(key, d.fields[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, preserving key order. Nested objects
// become *Document values, arrays become []any, numbers become float64.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := parseValue(dec)
	if err != nil {
		return err
	}
	doc, ok := v.(*Document)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*d = *doc
	return nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// string, float64, bool, or nil
		return tok, nil
	}
}

func parseObject(dec *json.Decoder) (*Document, error) {
	doc := NewDocument("")
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		if key == TypeField {
			name, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("discriminant %q must be a string, got %T", TypeField, value)
			}
			doc.typeName = name
			continue
		}
		doc.Set(key, value)
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	out := []any{}
	for dec.More() {
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
