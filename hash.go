package variant

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
	"sort"
)

// cyclicValueHash is the coarse hash every cyclic structure collapses to.
// Collapsing keeps Hash consistent with Equal on cyclic graphs: two
// structures that Equal deems equal through different cycle shapes still
// produce the same hash.
const cyclicValueHash uint64 = 0x9e3779b97f4a7c15

// Hash computes a structural hash mixing the runtime type identity, the
// member count and each field hash in member order. Hashes are stable within
// a process and consistent with Equal. Recursive structures terminate: the
// outermost call owns the visited set, nested revisits short-circuit, and
// once any cycle is detected the whole computation degrades to a fixed
// cycle hash.
func Hash(v *Value) uint64 {
	sum, cyclic := hashValue(v, make(visitSet))
	if cyclic {
		return cyclicValueHash
	}
	return sum
}

// Hash returns the structural hash of v.
func (v *Value) Hash() uint64 {
	return Hash(v)
}

// visitSet tracks in-progress values and containers by identity so any path
// back to one of them, with or without an intervening *Value, is detected.
type visitSet map[uintptr]struct{}

func (s visitSet) enter(id uintptr) bool {
	if _, inProgress := s[id]; inProgress {
		return false
	}
	s[id] = struct{}{}
	return true
}

func hashValue(v *Value, seen visitSet) (uint64, bool) {
	if v == nil {
		return 0, false
	}
	id := reflect.ValueOf(v).Pointer()
	if !seen.enter(id) {
		return 0, true
	}
	defer delete(seen, id)

	h := fnv.New64a()
	io.WriteString(h, v.typ.id)
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(len(v.fields)))
	h.Write(count[:])

	cyclic := false
	for _, field := range v.fields {
		sum, c := hashField(field, seen)
		cyclic = cyclic || c
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], sum)
		h.Write(buf[:])
	}
	return h.Sum64(), cyclic
}

func hashField(field any, seen visitSet) (uint64, bool) {
	switch typed := field.(type) {
	case *Value:
		return hashValue(typed, seen)
	case []any:
		if len(typed) > 0 {
			id := reflect.ValueOf(typed).Pointer()
			if !seen.enter(id) {
				return 0, true
			}
			defer delete(seen, id)
		}
		h := fnv.New64a()
		cyclic := false
		for _, element := range typed {
			sum, c := hashField(element, seen)
			cyclic = cyclic || c
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], sum)
			h.Write(buf[:])
		}
		return h.Sum64(), cyclic
	case Fields:
		return hashFieldMap(map[string]any(typed), seen)
	case map[string]any:
		return hashFieldMap(typed, seen)
	default:
		h := fnv.New64a()
		writeLeafHash(h, field)
		return h.Sum64(), false
	}
}

// writeLeafHash formats a leaf through the same lens Equal compares it:
// reflect.DeepEqual follows pointers, so pointer leaves are dereferenced
// before formatting and two pointers to equal payloads hash alike.
func writeLeafHash(h io.Writer, leaf any) {
	rv := reflect.ValueOf(leaf)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		io.WriteString(h, "<nil>")
		return
	}
	fmt.Fprintf(h, "%s=%v", rv.Type(), rv.Interface())
}

func hashFieldMap(fields map[string]any, seen visitSet) (uint64, bool) {
	if len(fields) > 0 {
		id := reflect.ValueOf(fields).Pointer()
		if !seen.enter(id) {
			return 0, true
		}
		defer delete(seen, id)
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	h := fnv.New64a()
	cyclic := false
	for _, key := range keys {
		io.WriteString(h, key)
		sum, c := hashField(fields[key], seen)
		cyclic = cyclic || c
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], sum)
		h.Write(buf[:])
	}
	return h.Sum64(), cyclic
}
