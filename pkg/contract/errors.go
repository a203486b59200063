package contract

import (
	"fmt"
	"strings"
)

// FieldError is a single failed rule. Path is dotted ("customerEmail",
// "0.title"); an empty path refers to the document itself.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every failed rule in field declaration order.
// Users are shown only First(); the full list is kept for callers that
// need it.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	first := e.First()
	if first.Path == "" {
		return first.Message
	}
	return first.Path + ": " + first.Message
}

// First returns the first failed rule.
func (e *ValidationError) First() FieldError {
	if e == nil || len(e.Errors) == 0 {
		return FieldError{Message: "Invalid input"}
	}
	return e.Errors[0]
}

// Fields returns the paths that failed, in order, without duplicates.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Errors))
	var out []string
	for _, fe := range e.Errors {
		if !seen[fe.Path] {
			seen[fe.Path] = true
			out = append(out, fe.Path)
		}
	}
	return out
}

// MalformedPathError is returned when a path template references a
// parameter that was not supplied.
type MalformedPathError struct {
	Path  string
	Param string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("contract: path %q is missing parameter %q", e.Path, e.Param)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.Join([]string{prefix, name}, ".")
}
