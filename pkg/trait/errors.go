package trait

import (
	"errors"
	"fmt"
	"strings"
)

// Conformance failures unwrap to one of these sentinels.
var (
	ErrMissingRequiredMethods = errors.New("implementation is missing required methods")
	ErrUnexpectedMethods      = errors.New("implementation provides methods outside the contract")
)

// ConformanceError reports an implementation rejected by Contract.Implement.
// Exactly one of Missing and Extra is populated; both are sorted so the
// rendered message is deterministic.
type ConformanceError struct {
	Contract string
	Location string
	Missing  []string
	Extra    []string
}

func (e *ConformanceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Missing) > 0 {
		return fmt.Sprintf("trait: contract %q at %s: missing required methods: %s",
			e.Contract, e.Location, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("trait: contract %q at %s: unexpected methods: %s",
		e.Contract, e.Location, strings.Join(e.Extra, ", "))
}

func (e *ConformanceError) Unwrap() error {
	if e == nil {
		return nil
	}
	if len(e.Missing) > 0 {
		return ErrMissingRequiredMethods
	}
	return ErrUnexpectedMethods
}
