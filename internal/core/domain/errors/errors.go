package errors

import "fmt"

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}

// InvalidArgumentError is raised for an argument that is set but unusable.
type InvalidArgumentError struct {
	argument string
	reason   string
}

func NewInvalidArgumentError(argument string, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{argument: argument, reason: reason}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' %s", e.argument, e.reason)
}
