package schema

import "fmt"

// UnknownFieldError is returned when a requested name matches no property.
type UnknownFieldError struct {
	Name   string
	Schema string
}

func (e *UnknownFieldError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("unknown field %q", e.Name)
	}
	return fmt.Sprintf("unknown field %q in schema %q", e.Name, e.Schema)
}
