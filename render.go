package variant

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// String renders the value as "<enum Name m1=v1,m2=v2>" for enum-owned
// types and "<variant Name m1=v1,m2=v2>" for standalone ones. Values
// currently being rendered higher up the recursion print as "..." so
// self-referential structures terminate. The in-progress set lives in the
// call, not in shared state, so concurrent renders never cross-talk.
func (v *Value) String() string {
	var b strings.Builder
	writeValue(&b, v, make(visitSet))
	return b.String()
}

// Render is the function form of Value.String.
func Render(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}

func writeValue(b *strings.Builder, v *Value, seen visitSet) {
	if v == nil {
		b.WriteString("<nil>")
		return
	}
	id := reflect.ValueOf(v).Pointer()
	if !seen.enter(id) {
		b.WriteString("...")
		return
	}
	defer delete(seen, id)

	b.WriteByte('<')
	if v.typ.enum != nil {
		b.WriteString("enum ")
		b.WriteString(v.typ.enum.name)
	} else {
		b.WriteString("variant ")
		b.WriteString(v.typ.name)
	}
	for i, name := range v.typ.members.names {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		writeField(b, v.fields[i], seen)
	}
	b.WriteByte('>')
}

func writeField(b *strings.Builder, field any, seen visitSet) {
	switch typed := field.(type) {
	case *Value:
		writeValue(b, typed, seen)
	case []any:
		if len(typed) > 0 {
			id := reflect.ValueOf(typed).Pointer()
			if !seen.enter(id) {
				b.WriteString("...")
				return
			}
			defer delete(seen, id)
		}
		b.WriteByte('[')
		for i, element := range typed {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeField(b, element, seen)
		}
		b.WriteByte(']')
	case Fields:
		writeFieldMap(b, map[string]any(typed), seen)
	case map[string]any:
		writeFieldMap(b, typed, seen)
	default:
		fmt.Fprintf(b, "%v", field)
	}
}

func writeFieldMap(b *strings.Builder, fields map[string]any, seen visitSet) {
	if len(fields) > 0 {
		id := reflect.ValueOf(fields).Pointer()
		if !seen.enter(id) {
			b.WriteString("...")
			return
		}
		defer delete(seen, id)
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	b.WriteString("map[")
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte(':')
		writeField(b, fields[key], seen)
	}
	b.WriteByte(']')
}
