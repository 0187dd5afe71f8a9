// Package validation scores college records for completeness, range validity
// and internal consistency.
package validation

import "fmt"

// UnknownFieldError reports a reference field list entry that names no college column.
type UnknownFieldError struct {
	List  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s lists unknown field %q", e.List, e.Field)
}
