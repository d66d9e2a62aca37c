package variant

// Tuple returns the field values in member declaration order. The slice is a
// copy; mutating it does not touch the value.
func (v *Value) Tuple() []any {
	return append([]any(nil), v.fields...)
}

// ToMap returns every field keyed by member name.
func (v *Value) ToMap() Fields {
	out := make(Fields, len(v.fields))
	for i, name := range v.typ.members.names {
		out[name] = v.fields[i]
	}
	return out
}

// Deconstruct extracts fields for keyed pattern matching. A nil selector
// yields every field. An ordered selector ([]string or []any of strings)
// yields the matching fields, stopping at the first unknown key so the
// result covers a strict prefix of the request; when more keys are
// requested than the type has members the result is empty. The selector's
// order decides which prefix is included, not an ordering of the result:
// Fields is a map and carries no order. Any other selector fails with
// ErrInvalidKeySelector.
func (v *Value) Deconstruct(selector any) (Fields, error) {
	keys, err := v.selectorKeys(selector)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		return v.ToMap(), nil
	}
	out := Fields{}
	if len(keys) > v.typ.members.Len() {
		return out, nil
	}
	for _, key := range keys {
		idx, ok := v.typ.members.Index(key)
		if !ok {
			break
		}
		out[key] = v.fields[idx]
	}
	return out, nil
}

func (v *Value) selectorKeys(selector any) ([]string, error) {
	switch typed := selector.(type) {
	case nil:
		return nil, nil
	case []string:
		if typed == nil {
			return nil, nil
		}
		return typed, nil
	case []any:
		keys := make([]string, 0, len(typed))
		for _, element := range typed {
			key, ok := element.(string)
			if !ok {
				return nil, &ConstructionError{Type: v.typ.name, Err: ErrInvalidKeySelector}
			}
			keys = append(keys, key)
		}
		return keys, nil
	default:
		return nil, &ConstructionError{Type: v.typ.name, Err: ErrInvalidKeySelector}
	}
}
