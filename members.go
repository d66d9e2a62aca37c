package variant

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-variant/internal/ident"
)

// MemberSet is the frozen, ordered, duplicate-free list of member names a
// variant type stores per value. Instances are only produced by
// NewMemberSet; the zero value is an empty set.
type MemberSet struct {
	names []string
	index map[string]int
}

// NewMemberSet validates tokens and freezes them into a MemberSet. Tokens are
// checked in order: each must be a string, must not end in the assignment
// suffix "=", must be a legal bare identifier, and must not repeat an earlier
// name. First-seen order is preserved.
func NewMemberSet(tokens ...any) (MemberSet, error) {
	set := MemberSet{
		names: make([]string, 0, len(tokens)),
		index: make(map[string]int, len(tokens)),
	}
	for _, token := range tokens {
		name, ok := token.(string)
		if !ok {
			return MemberSet{}, &MemberError{Member: describeToken(token), Err: ErrInvalidMemberType}
		}
		// The suffix check runs before the identifier check; "foo=" must
		// report the assignment suffix, not the illegal shape.
		if strings.HasSuffix(name, "=") {
			return MemberSet{}, &MemberError{Member: name, Err: ErrInvalidMemberName}
		}
		if !ident.Valid(name) {
			return MemberSet{}, &MemberError{Member: name, Err: ErrIllegalMemberName}
		}
		if _, exists := set.index[name]; exists {
			return MemberSet{}, &MemberError{Member: name, Err: ErrDuplicateMember}
		}
		set.index[name] = len(set.names)
		set.names = append(set.names, name)
	}
	return set, nil
}

// MustMemberSet is NewMemberSet panicking on invalid tokens; intended for
// member lists fixed at program start.
func MustMemberSet(tokens ...any) MemberSet {
	set, err := NewMemberSet(tokens...)
	if err != nil {
		panic(err)
	}
	return set
}

// Names returns the member names in declaration order. The slice is a copy.
func (m MemberSet) Names() []string {
	if len(m.names) == 0 {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Len returns the number of members.
func (m MemberSet) Len() int {
	return len(m.names)
}

// Index returns the position of name and whether it is a member.
func (m MemberSet) Index(name string) (int, bool) {
	idx, ok := m.index[name]
	return idx, ok
}

// Has reports whether name is a member.
func (m MemberSet) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

func describeToken(token any) string {
	if token == nil {
		return "<nil>"
	}
	if s, ok := token.(string); ok {
		return s
	}
	return fmt.Sprintf("%v (%T)", token, token)
}
