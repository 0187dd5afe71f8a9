package db

import "fmt"

// UnknownColumnError reports a write naming a column the college table does not have.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown college field %q", e.Column)
}

// FieldTypeError reports a value that cannot be stored in its column.
type FieldTypeError struct {
	Column string
	Kind   ColumnKind
	Value  any
	Cause  error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q expects %s, got %v: %v", e.Column, e.Kind, e.Value, e.Cause)
}

func (e *FieldTypeError) Unwrap() error {
	return e.Cause
}
