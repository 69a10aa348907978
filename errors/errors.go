/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrUnregisteredType is returned when encoding an object whose runtime
	// type has no entry in the encoder registry.
	ErrUnregisteredType = errors.New("unregistered type")

	// ErrUnknownTypeName is returned when decoding a document whose
	// discriminant does not match any registered decoder.
	ErrUnknownTypeName = errors.New("unknown type name")

	// ErrAmbiguousRegistration is returned when a type is registered in both
	// the exact and ancestor encoder tables.
	ErrAmbiguousRegistration = errors.New("ambiguous registration")

	// ErrAlreadyRegistered is returned when a registry key is registered twice.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrUnsupportedArgument is returned when a caller passes options that a
	// method does not accept.
	ErrUnsupportedArgument = errors.New("unsupported argument")

	// ErrNotFound is returned when a stored document is not found.
	ErrNotFound = errors.New("document not found")
)

// UnregisteredTypeError reports an encode attempt for an unknown runtime type.
type UnregisteredTypeError struct {
	TypeName string
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("no encoder registered for type %s", e.TypeName)
}

func (e *UnregisteredTypeError) Is(target error) bool {
	return target == ErrUnregisteredType
}

// UnknownTypeNameError reports a decode attempt for an unknown discriminant.
type UnknownTypeNameError struct {
	Name string
}

func (e *UnknownTypeNameError) Error() string {
	return fmt.Sprintf("no decoder registered for type name %q", e.Name)
}

func (e *UnknownTypeNameError) Is(target error) bool {
	return target == ErrUnknownTypeName
}

// AmbiguousRegistrationError reports a registration that more than one
// dispatch table would claim. Dispatch order would be undefined, so
// registration rejects it outright.
type AmbiguousRegistrationError struct {
	TypeName string
}

func (e *AmbiguousRegistrationError) Error() string {
	return fmt.Sprintf("ambiguous registration for %s: more than one dispatch table would match", e.TypeName)
}

func (e *AmbiguousRegistrationError) Is(target error) bool {
	return target == ErrAmbiguousRegistration
}

// AlreadyRegisteredError reports a duplicate registry key.
type AlreadyRegisteredError struct {
	Kind string
	Key  string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Kind, e.Key)
}

func (e *AlreadyRegisteredError) Is(target error) bool {
	return target == ErrAlreadyRegistered
}

// UnsupportedArgumentError reports options passed to a method that accepts none.
type UnsupportedArgumentError struct {
	Method    string
	Arguments []string
}

func (e *UnsupportedArgumentError) Error() string {
	if len(e.Arguments) == 0 {
		return fmt.Sprintf("unsupported arguments in %s", e.Method)
	}
	return fmt.Sprintf("arguments %s are not supported in %s", strings.Join(e.Arguments, ", "), e.Method)
}

func (e *UnsupportedArgumentError) Is(target error) bool {
	return target == ErrUnsupportedArgument
}

// NotFoundError reports a missing stored document.
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Helper functions for creating errors

// NewUnregisteredTypeError creates a new UnregisteredTypeError
func NewUnregisteredTypeError(typeName string) error {
	return &UnregisteredTypeError{TypeName: typeName}
}

// NewUnknownTypeNameError creates a new UnknownTypeNameError
func NewUnknownTypeNameError(name string) error {
	return &UnknownTypeNameError{Name: name}
}

// NewAmbiguousRegistrationError creates a new AmbiguousRegistrationError
func NewAmbiguousRegistrationError(typeName string) error {
	return &AmbiguousRegistrationError{TypeName: typeName}
}

// NewAlreadyRegisteredError creates a new AlreadyRegisteredError
func NewAlreadyRegisteredError(kind, key string) error {
	return &AlreadyRegisteredError{Kind: kind, Key: key}
}

// NewUnsupportedArgumentError creates a new UnsupportedArgumentError
func NewUnsupportedArgumentError(method string, arguments ...string) error {
	return &UnsupportedArgumentError{Method: method, Arguments: arguments}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(docType, key string) error {
	return &NotFoundError{Type: docType, Key: key}
}

// IsUnregisteredType checks if an error is an unregistered type error
func IsUnregisteredType(err error) bool {
	return errors.Is(err, ErrUnregisteredType)
}

// IsUnknownTypeName checks if an error is an unknown type name error
func IsUnknownTypeName(err error) bool {
	return errors.Is(err, ErrUnknownTypeName)
}

// IsAmbiguousRegistration checks if an error is an ambiguous registration error
func IsAmbiguousRegistration(err error) bool {
	return errors.Is(err, ErrAmbiguousRegistration)
}

// IsAlreadyRegistered checks if an error is a duplicate registration error
func IsAlreadyRegistered(err error) bool {
	return errors.Is(err, ErrAlreadyRegistered)
}

// IsUnsupportedArgument checks if an error is an unsupported argument error
func IsUnsupportedArgument(err error) bool {
	return errors.Is(err, ErrUnsupportedArgument)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
