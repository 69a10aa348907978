/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/suparena/benchstore/errors"
)

// EncodeFunc converts an object into a document whose field values are raw
// (not yet encoded) Go values. The dispatcher encodes the fields afterwards
// and stamps the discriminant, so one EncodeFunc can serve a whole family of
// related types.
type EncodeFunc func(obj any) (*Document, error)

// DecodeFunc reconstructs an object from a document whose field values have
// already been decoded into live objects.
type DecodeFunc func(doc *Document) (any, error)

type ancestorEntry struct {
	base reflect.Type
	fn   EncodeFunc
}

type classEntry struct {
	base         reflect.Type
	discriminant string
}

// Registry holds the four dispatch tables of the serialization layer:
//
//  1. exact encoders, keyed by concrete type
//  2. ancestor encoders, an ordered list of (interface, encoder) entries
//     consulted in registration order when no exact match exists
//  3. decoders, keyed by type name (the discriminant), plus the reverse
//     type -> name mapping used to stamp encoded documents
//  4. the class tables, mapping interface types to "Type[Base]" discriminants
//     for fields that hold type references rather than instances
//
// A Registry is built once, single-threaded, by a manifest (see CoreRegistry)
// and is read-only afterwards: all lookups are safe for concurrent readers
// without locking.
type Registry struct {
	encoders      map[reflect.Type]EncodeFunc
	ancestors     []ancestorEntry
	decoders      map[string]DecodeFunc
	names         map[reflect.Type]string
	typesByName   map[string]reflect.Type
	classEncoders []classEntry
	classDecoders map[string]DecodeFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders:      make(map[reflect.Type]EncodeFunc),
		decoders:      make(map[string]DecodeFunc),
		names:         make(map[reflect.Type]string),
		typesByName:   make(map[string]reflect.Type),
		classDecoders: make(map[string]DecodeFunc),
	}
}

// TypeOf returns the reflect.Type of T. Works for interface types as well as
// concrete ones, which makes ancestor registration explicit:
//
//	reg.RegisterAncestorEncoder(jsonstore.TypeOf[benchmark.Metric](), fn)
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterEncoder registers an exact-type encoder for the prototype's type.
// Registering a type that already appears in the ancestor table is an
// AmbiguousRegistrationError: dispatch order would be undefined.
func (r *Registry) RegisterEncoder(prototype any, fn EncodeFunc) error {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return fmt.Errorf("cannot register encoder for nil prototype")
	}
	if _, exists := r.encoders[t]; exists {
		return errors.NewAlreadyRegisteredError("encoder", t.String())
	}
	for _, e := range r.ancestors {
		if e.base == t {
			return errors.NewAmbiguousRegistrationError(t.String())
		}
	}
	r.encoders[t] = fn
	return nil
}

// RegisterAncestorEncoder appends a fallback encoder for every type whose
// ancestor chain (interface set) includes base. Order matters: the first
// matching entry wins, so register from most specific to least specific.
func (r *Registry) RegisterAncestorEncoder(base reflect.Type, fn EncodeFunc) error {
	if base == nil || base.Kind() != reflect.Interface {
		return fmt.Errorf("ancestor encoder base must be an interface type, got %v", base)
	}
	if _, exists := r.encoders[base]; exists {
		return errors.NewAmbiguousRegistrationError(base.String())
	}
	for _, e := range r.ancestors {
		if e.base == base {
			return errors.NewAlreadyRegisteredError("ancestor encoder", base.String())
		}
	}
	r.ancestors = append(r.ancestors, ancestorEntry{base: base, fn: fn})
	return nil
}

// RegisterDecoder registers a decoder under a type name and records the
// prototype's type as carrying that discriminant. Names form a flat namespace:
// they are unique across the whole registry. Names in the "Type[...]" form
// are an AmbiguousRegistrationError: decode routes those to the class table,
// so an instance decoder under such a name would never be consulted.
func (r *Registry) RegisterDecoder(name string, prototype any, fn DecodeFunc) error {
	if isClassDiscriminant(name) {
		return errors.NewAmbiguousRegistrationError(name)
	}
	t := reflect.TypeOf(prototype)
	if err := r.registerName(name, t); err != nil {
		return err
	}
	r.decoders[name] = fn
	return nil
}

// RegisterTypeName records a name for a type without a decoder. Used for
// model types that are only ever referenced as type handles.
func (r *Registry) RegisterTypeName(name string, t reflect.Type) error {
	return r.registerName(name, t)
}

func (r *Registry) registerName(name string, t reflect.Type) error {
	if name == "" || t == nil {
		return fmt.Errorf("type name and type must be non-empty")
	}
	if _, exists := r.typesByName[name]; exists {
		return errors.NewAlreadyRegisteredError("type name", name)
	}
	if existing, exists := r.names[t]; exists {
		return errors.NewAlreadyRegisteredError("type", fmt.Sprintf("%s (as %q)", t, existing))
	}
	r.typesByName[name] = t
	r.names[t] = name
	return nil
}

// RegisterClassEncoder maps an interface type to a parametrized discriminant
// of the form "Type[Base]". A reflect.Type value implementing base encodes as
// a type-reference document rather than an instance. Order matters, as with
// ancestor encoders.
func (r *Registry) RegisterClassEncoder(base reflect.Type, discriminant string) error {
	if base == nil || base.Kind() != reflect.Interface {
		return fmt.Errorf("class encoder base must be an interface type, got %v", base)
	}
	if !isClassDiscriminant(discriminant) {
		return fmt.Errorf("class discriminant must have the form Type[Base], got %q", discriminant)
	}
	for _, e := range r.classEncoders {
		if e.base == base {
			return errors.NewAlreadyRegisteredError("class encoder", base.String())
		}
	}
	r.classEncoders = append(r.classEncoders, classEntry{base: base, discriminant: discriminant})
	return nil
}

// RegisterClassDecoder registers a decoder for a parametrized discriminant.
func (r *Registry) RegisterClassDecoder(discriminant string, fn DecodeFunc) error {
	if !isClassDiscriminant(discriminant) {
		return fmt.Errorf("class discriminant must have the form Type[Base], got %q", discriminant)
	}
	if _, exists := r.classDecoders[discriminant]; exists {
		return errors.NewAlreadyRegisteredError("class decoder", discriminant)
	}
	r.classDecoders[discriminant] = fn
	return nil
}

// NameFor returns the registered discriminant for a concrete type.
func (r *Registry) NameFor(t reflect.Type) (string, bool) {
	name, ok := r.names[t]
	return name, ok
}

// TypeByName returns the concrete type registered under a discriminant.
func (r *Registry) TypeByName(name string) (reflect.Type, bool) {
	t, ok := r.typesByName[name]
	return t, ok
}

// DecoderNames returns all registered instance discriminants, sorted.
func (r *Registry) DecoderNames() []string {
	out := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func isClassDiscriminant(name string) bool {
	return strings.HasPrefix(name, "Type[") && strings.HasSuffix(name, "]")
}
