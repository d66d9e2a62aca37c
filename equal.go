package variant

import "reflect"

// valuePair tracks one in-progress comparison by operand identity. Operands
// are keyed by pointer so values and containers (slices, maps) share the same
// bookkeeping and a container reaching itself without an intervening *Value
// still terminates.
type valuePair struct {
	a, b uintptr
}

type pairSet map[valuePair]struct{}

func pairOf(a, b any) valuePair {
	return valuePair{a: reflect.ValueOf(a).Pointer(), b: reflect.ValueOf(b).Pointer()}
}

func (s pairSet) enter(pair valuePair) bool {
	if _, inProgress := s[pair]; inProgress {
		return false
	}
	s[pair] = struct{}{}
	return true
}

// Equal implements structural equality: identical pointers are equal,
// values of different types are never equal, otherwise fields are compared
// in member order. Comparisons in progress higher up the recursion are
// treated as equal, which breaks cycles conservatively: a structure that
// differs from another only by how it reaches itself compares equal. This is
// not graph isomorphism.
func Equal(a, b *Value) bool {
	return equalValues(a, b, make(pairSet))
}

// Equal reports whether v and other are structurally equal.
func (v *Value) Equal(other *Value) bool {
	return Equal(v, other)
}

func equalValues(a, b *Value, seen pairSet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.typ != b.typ {
		return false
	}
	pair := pairOf(a, b)
	if !seen.enter(pair) {
		return true
	}
	defer delete(seen, pair)
	for i := range a.fields {
		if !equalField(a.fields[i], b.fields[i], seen) {
			return false
		}
	}
	return true
}

// equalField compares one pair of field values. Variant values recurse
// through equalValues so the cycle bookkeeping stays threaded; the common
// container shapes ([]any and string-keyed maps) are walked so variant
// values nested inside them still compare structurally. Everything else
// falls back to reflect.DeepEqual.
func equalField(a, b any, seen pairSet) bool {
	av, aok := a.(*Value)
	bv, bok := b.(*Value)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		return equalValues(av, bv, seen)
	}
	switch at := a.(type) {
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		if len(at) == 0 {
			return true
		}
		pair := pairOf(at, bt)
		if !seen.enter(pair) {
			return true
		}
		defer delete(seen, pair)
		for i := range at {
			if !equalField(at[i], bt[i], seen) {
				return false
			}
		}
		return true
	case Fields:
		return equalFieldMaps(map[string]any(at), asStringMap(b), seen)
	case map[string]any:
		return equalFieldMaps(at, asStringMap(b), seen)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalFieldMaps(a, b map[string]any, seen pairSet) bool {
	if b == nil || len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	pair := pairOf(a, b)
	if !seen.enter(pair) {
		return true
	}
	defer delete(seen, pair)
	for key, av := range a {
		bv, ok := b[key]
		if !ok || !equalField(av, bv, seen) {
			return false
		}
	}
	return true
}

func asStringMap(value any) map[string]any {
	switch typed := value.(type) {
	case Fields:
		return map[string]any(typed)
	case map[string]any:
		return typed
	default:
		return nil
	}
}
