package variant

import "sort"

// WithChanges returns a new value of the same type with the given fields
// overridden and every other field copied from the receiver. The receiver is
// never mutated. An empty change-set returns the receiver itself with no
// allocation. Unknown change keys fail with ErrUnknownMember.
func (v *Value) WithChanges(changes Fields) (*Value, error) {
	if len(changes) == 0 {
		return v, nil
	}
	var unknown []string
	for key := range changes {
		if !v.typ.members.Has(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ConstructionError{Type: v.typ.name, Members: unknown, Err: ErrUnknownMember}
	}
	fields := append([]any(nil), v.fields...)
	for key, value := range changes {
		idx, _ := v.typ.members.Index(key)
		fields[idx] = value
	}
	return &Value{typ: v.typ, fields: fields}, nil
}
