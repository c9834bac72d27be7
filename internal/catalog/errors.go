package catalog

import (
	"fmt"
	"strings"
)

// CatalogLoadError reports a catalog that could not be read or failed validation.
// A process must not serve requests with a catalog that produced this error.
type CatalogLoadError struct {
	Source string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// UnknownRoleError reports a target role that matches no catalog role.
type UnknownRoleError struct {
	Target string
	Known  []string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q (known roles: %s)", e.Target, strings.Join(e.Known, ", "))
}
