/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"fmt"

	"github.com/suparena/benchstore/errors"
)

// Decode reconstructs a live object from a document. The discriminant selects
// the target: "Type[...]" names resolve through the class-decoder table into
// type handles; plain names resolve through the decoder table. Nested
// document-valued fields are decoded depth-first, children before parent, so
// the decode function receives fully reconstructed field values.
//
// Decoding either fully succeeds or returns an error before any object
// escapes; an unknown discriminant anywhere in the tree aborts the whole call.
func (r *Registry) Decode(doc *Document) (any, error) {
	return r.decodeDocument(doc)
}

func (r *Registry) decodeDocument(doc *Document) (any, error) {
	name := doc.TypeName()

	// Plain mappings (no discriminant) decode field-wise into a map.
	if name == "" {
		out := make(map[string]any, doc.Len())
		for _, key := range doc.Keys() {
			decoded, err := r.decodeValue(doc.Value(key))
			if err != nil {
				return nil, err
			}
			out[key] = decoded
		}
		return out, nil
	}

	if isClassDiscriminant(name) {
		fn, ok := r.classDecoders[name]
		if !ok {
			return nil, errors.NewUnknownTypeNameError(name)
		}
		return fn(doc)
	}

	fn, ok := r.decoders[name]
	if !ok {
		return nil, errors.NewUnknownTypeNameError(name)
	}

	resolved := NewDocument(name)
	for _, key := range doc.Keys() {
		decoded, err := r.decodeValue(doc.Value(key))
		if err != nil {
			return nil, fmt.Errorf("decoding %s.%s: %w", name, key, err)
		}
		resolved.Set(key, decoded)
	}
	obj, err := fn(resolved)
	if err != nil {
		return nil, fmt.Errorf("constructing %s: %w", name, err)
	}
	return obj, nil
}

func (r *Registry) decodeValue(v any) (any, error) {
	switch x := v.(type) {
	case *Document:
		return r.decodeDocument(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			decoded, err := r.decodeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	default:
		return v, nil
	}
}
