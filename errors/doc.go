/*
Package errors provides semantic error types for the benchstore library.

The package defines the serialization and fetch error taxonomy with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrUnregisteredType      = errors.New("unregistered type")
	    ErrUnknownTypeName       = errors.New("unknown type name")
	    ErrAmbiguousRegistration = errors.New("ambiguous registration")
	    ErrAlreadyRegistered     = errors.New("already registered")
	    ErrUnsupportedArgument   = errors.New("unsupported argument")
	    ErrNotFound              = errors.New("document not found")
	)

Usage:

	doc, err := reg.Encode(obj)
	if err != nil {
	    if errors.IsUnregisteredType(err) {
	        // The manifest is missing an entry for obj's type.
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewUnknownTypeNameError("BraninMetric")
	err := errors.NewUnsupportedArgumentError("FetchTrialData", "timeout")

Structural and programmer errors (unregistered types, bad arguments, ambiguous
registration) are raised immediately and are fatal to the call. Expected
data-availability failures are not part of this taxonomy; they travel as
values (see benchmark.FetchResult).

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
