package variant

import "fmt"

// Fields is a keyword argument or change-set map keyed by member name.
type Fields map[string]any

// Value is one instance of a variant Type. It stores one value per member in
// declaration order. Fields stay mutable through Set; WithChanges is the
// copying alternative and never mutates its receiver.
type Value struct {
	typ    *Type
	fields []any
}

// Type returns the runtime type of the value.
func (v *Value) Type() *Type {
	return v.typ
}

// Members returns the member names of the value's type in declaration order.
func (v *Value) Members() []string {
	return v.typ.Members()
}

// Get returns the field stored under name and whether name is a member.
func (v *Value) Get(name string) (any, bool) {
	idx, ok := v.typ.members.Index(name)
	if !ok {
		return nil, false
	}
	return v.fields[idx], true
}

// MustGet is Get panicking when name is not a member.
func (v *Value) MustGet(name string) any {
	value, ok := v.Get(name)
	if !ok {
		panic(&ConstructionError{Type: v.typ.name, Members: []string{name}, Err: ErrUnknownMember})
	}
	return value
}

// Set stores value under name in place. Use WithChanges for the
// non-mutating form.
func (v *Value) Set(name string, value any) error {
	idx, ok := v.typ.members.Index(name)
	if !ok {
		return &ConstructionError{Type: v.typ.name, Members: []string{name}, Err: ErrUnknownMember}
	}
	v.fields[idx] = value
	return nil
}

// Call invokes a behavior attached to the value's type, either at definition
// time or through trait composition.
func (v *Value) Call(name string, args ...any) (any, error) {
	fn, ok := v.typ.method(name)
	if !ok {
		return nil, fmt.Errorf("variant: %s: %w: %q", v.typ.name, ErrUnknownMethod, name)
	}
	return fn(v, args...)
}

// IsKind reports whether the value belongs to the given *Type (exact match)
// or *Enum (any of its variants).
func (v *Value) IsKind(of any) bool {
	if v == nil {
		return false
	}
	switch kind := of.(type) {
	case *Type:
		return v.typ == kind
	case *Enum:
		return kind.Owns(v.typ)
	default:
		return false
	}
}
