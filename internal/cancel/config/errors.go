package config

import "fmt"

// MissingInputError reports a required input that was not supplied.
type MissingInputError struct {
	Name string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("Input required and not supplied: %s", e.Name)
}

// InvalidInputError reports an input that was supplied but cannot be used.
type InvalidInputError struct {
	Name   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("Input is not valid: %s: %s", e.Name, e.Reason)
}
