/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"golang.org/x/exp/slices"

	"github.com/suparena/benchstore/errors"
)

// Encode converts a live object into a document. Dispatch resolves the most
// specific applicable encoder: an exact entry for the object's concrete type
// wins; otherwise the ancestor table is walked in registration order and the
// first entry whose interface the type implements is used. The resulting
// document is stamped with the concrete type's own registered discriminant,
// even when an ancestor encoder produced it, so decoding is lossless.
//
// reflect.Type values route through the class path and encode as
// "Type[Base]" type-reference documents.
//
// Encode is a pure function of the object and the registry.
func (r *Registry) Encode(obj any) (*Document, error) {
	if obj == nil {
		return nil, errors.NewUnregisteredTypeError("<nil>")
	}
	if t, ok := obj.(reflect.Type); ok {
		return r.encodeClass(t)
	}

	rt := reflect.TypeOf(obj)
	fn, ok := r.encoders[rt]
	if !ok {
		for _, e := range r.ancestors {
			if rt.Implements(e.base) {
				fn = e.fn
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, errors.NewUnregisteredTypeError(rt.String())
	}

	doc, err := fn(obj)
	if err != nil {
		return nil, err
	}
	name, ok := r.names[rt]
	if !ok {
		return nil, errors.NewUnregisteredTypeError(fmt.Sprintf("%s (no decoder name)", rt))
	}
	doc.SetTypeName(name)

	for _, key := range doc.Keys() {
		encoded, err := r.encodeValue(doc.Value(key))
		if err != nil {
			return nil, fmt.Errorf("encoding %s.%s: %w", name, key, err)
		}
		doc.Set(key, encoded)
	}
	return doc, nil
}

// encodeClass encodes a type reference. The first class-encoder entry whose
// interface the type implements supplies the parametrized discriminant; the
// document carries the type's registered name so the decoder can reconstruct
// the handle.
func (r *Registry) encodeClass(t reflect.Type) (*Document, error) {
	for _, e := range r.classEncoders {
		if t.Implements(e.base) {
			name, ok := r.names[t]
			if !ok {
				return nil, errors.NewUnregisteredTypeError(t.String())
			}
			doc := NewDocument(e.discriminant)
			doc.Set("name", name)
			return doc, nil
		}
	}
	return nil, errors.NewUnregisteredTypeError(fmt.Sprintf("Type[%s]", t))
}

// encodeValue converts a raw field value into its wire shape: scalars pass
// through, registered objects become nested documents, type references become
// class documents, slices and string-keyed maps recurse. Map keys are sorted
// so encoding is deterministic.
func (r *Registry) encodeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Document:
		return x, nil
	case reflect.Type:
		return r.encodeClass(x)
	case strfmt.DateTime:
		return x.String(), nil
	case *strfmt.DateTime:
		if x == nil {
			return nil, nil
		}
		return x.String(), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	}

	rv := reflect.ValueOf(v)
	rt := rv.Type()

	// Registered types (including enum-like named scalars) dispatch before
	// the generic kind switch.
	if _, ok := r.encoders[rt]; ok {
		return r.Encode(v)
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String:
		return v, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Numbers are canonicalized to float64, the JSON number shape, so a
		// document built in memory matches one parsed off the wire.
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			encoded, err := r.encodeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = encoded
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if rt.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot encode map with %s keys", rt.Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		doc := NewDocument("")
		for _, k := range keys {
			encoded, err := r.encodeValue(rv.MapIndex(reflect.ValueOf(k)).Interface())
			if err != nil {
				return nil, err
			}
			doc.Set(k, encoded)
		}
		return doc, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		switch rv.Elem().Kind() {
		case reflect.Bool, reflect.String,
			reflect.Int, reflect.Int32, reflect.Int64,
			reflect.Float32, reflect.Float64:
			return r.encodeValue(rv.Elem().Interface())
		}
		return r.Encode(v)
	case reflect.Interface, reflect.Struct:
		return r.Encode(v)
	default:
		return nil, fmt.Errorf("cannot encode value of kind %s", rv.Kind())
	}
}
