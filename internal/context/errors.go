package context

import "fmt"

// ContextNotFoundError is returned when a named context does not exist.
type ContextNotFoundError struct {
	Name string
}

func (e *ContextNotFoundError) Error() string {
	return fmt.Sprintf("context %q not found", e.Name)
}

// ContextExistsError is returned when adding a context whose name is already taken
// and overwriting was not confirmed.
type ContextExistsError struct {
	Name string
}

func (e *ContextExistsError) Error() string {
	return fmt.Sprintf("context %q already exists", e.Name)
}

// ParseError is returned by Storage.Load when the configuration file exists but
// cannot be decoded. The accompanying config is empty and usable.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
