package variant

import (
	"errors"
	"fmt"
	"strings"
)

// Validation and construction failures unwrap to one of these sentinels so
// callers can branch with errors.Is while still receiving a descriptive
// message naming the offending member(s).
var (
	ErrInvalidMemberType  = errors.New("member is not a name")
	ErrInvalidMemberName  = errors.New("member name carries an assignment suffix")
	ErrIllegalMemberName  = errors.New("member name is not a legal identifier")
	ErrDuplicateMember    = errors.New("member name already declared")
	ErrArityConflict      = errors.New("positional and keyword arguments are mutually exclusive")
	ErrArityMismatch      = errors.New("too many positional arguments")
	ErrMissingMembers     = errors.New("missing required members")
	ErrUnknownMember      = errors.New("unknown member")
	ErrNotSupported       = errors.New("variant types cannot be redefined")
	ErrInvalidKeySelector = errors.New("key selector is not an ordered collection of names")
	ErrUnknownMethod      = errors.New("method not attached")
)

// MemberError reports a single member name rejected during validation.
type MemberError struct {
	Member string
	Err    error
}

func (e *MemberError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("variant: member %q: %v", e.Member, e.Err)
}

func (e *MemberError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConstructionError reports a failed value construction against a named type.
// Members carries the offending member names when the failure concerns
// specific members (missing or unknown) and is empty for arity failures.
type ConstructionError struct {
	Type    string
	Members []string
	Err     error
}

func (e *ConstructionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case errors.Is(e.Err, ErrMissingMembers):
		noun := "member"
		if len(e.Members) > 1 {
			noun = "members"
		}
		return fmt.Sprintf("variant: %s: missing %s %s", e.Type, noun, joinQuoted(e.Members))
	case errors.Is(e.Err, ErrUnknownMember):
		noun := "member"
		if len(e.Members) > 1 {
			noun = "members"
		}
		return fmt.Sprintf("variant: %s: unknown %s %s", e.Type, noun, joinQuoted(e.Members))
	default:
		return fmt.Sprintf("variant: %s: %v", e.Type, e.Err)
	}
}

func (e *ConstructionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
