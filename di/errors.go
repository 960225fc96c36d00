package di

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNilDefinition is returned when a nil *Definition is registered.
	ErrNilDefinition = errors.New("di: nil definition")

	// ErrNilRegistry is returned when an operation needs a registry and got nil.
	ErrNilRegistry = errors.New("di: nil registry")
)

// InvalidIDError is returned for empty ids or ids containing whitespace.
type InvalidIDError struct{ ID string }

// Error implements the error interface.
func (e InvalidIDError) Error() string {
	// Example: di: invalid service id "bad id"
	return "di: invalid service id " + strconv.Quote(e.ID)
}

// ServiceNotFoundError is returned by Registry.Get and Container.Get for unknown ids.
type ServiceNotFoundError struct{ ID string }

// Error implements the error interface.
func (e ServiceNotFoundError) Error() string {
	// Example: di: service "mailer" not found
	return "di: service " + strconv.Quote(e.ID) + " not found"
}

// InvalidPriorityError is returned when a tag's priority attribute is not an integer.
type InvalidPriorityError struct {
	ID    string
	Tag   string
	Value any
}

// Error implements the error interface.
func (e InvalidPriorityError) Error() string {
	// Example: di: service "a" tag "form.type" has non-integer priority "high"
	return "di: service " + strconv.Quote(e.ID) + " tag " + strconv.Quote(e.Tag) +
		" has non-integer priority " + strconv.Quote(fmt.Sprint(e.Value))
}

// MissingFactoryError is returned when no factory is registered for a class.
type MissingFactoryError struct {
	ID    string
	Class string
}

// Error implements the error interface.
func (e MissingFactoryError) Error() string {
	// Example: di: no factory for class "App\\Mailer" (service "mailer")
	return "di: no factory for class " + strconv.Quote(e.Class) + " (service " + strconv.Quote(e.ID) + ")"
}

// MissingBinderError is returned when a recorded call has no binder.
type MissingBinderError struct {
	ID     string
	Method string
}

// Error implements the error interface.
func (e MissingBinderError) Error() string {
	// Example: di: no binder for method "setLogger" (service "mailer")
	return "di: no binder for method " + strconv.Quote(e.Method) + " (service " + strconv.Quote(e.ID) + ")"
}

// CircularReferenceError is returned when instantiation re-enters a service.
type CircularReferenceError struct{ Path []string }

// Error implements the error interface.
func (e CircularReferenceError) Error() string {
	// Example: di: circular reference a -> b -> a
	return "di: circular reference " + strings.Join(e.Path, " -> ")
}

// CallError wraps a binder failure with the service and method it came from.
type CallError struct {
	ID     string
	Method string
	Err    error
}

// Error implements the error interface.
func (e CallError) Error() string {
	return "di: call " + strconv.Quote(e.Method) + " on service " + strconv.Quote(e.ID) + ": " + e.Err.Error()
}

// Unwrap returns the binder error.
func (e CallError) Unwrap() error { return e.Err }
