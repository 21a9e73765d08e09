package binder

import "errors"

var (
	// ErrBinderNotApplicable means the request carries no data for this binder.
	// Callers chaining binders skip to the next one.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")

	ErrInvalidForm    = errors.New("invalid form data")
	ErrInvalidJSON    = errors.New("invalid JSON")
	ErrInvalidSignals = errors.New("invalid datastar signals")
	ErrInvalidPath    = errors.New("invalid path parameter")
	ErrInvalidQuery   = errors.New("invalid query parameter")
)
