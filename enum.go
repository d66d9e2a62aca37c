package variant

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-variant/pkg/observe"
)

// Enum groups variant types under a common parent tag so callers can ask "is
// this value one of these cases". Variants register in declaration order and
// the registry is write-once from any single variant's point of view: a
// declared type never changes or leaves the enum.
type Enum struct {
	id   string
	name string

	mu       sync.RWMutex
	variants []*Type
	byName   map[string]*Type
	hooks    observe.Hooks
}

// EnumOption configures an enum at declaration time.
type EnumOption func(*Enum)

// WithHooks wires observation hooks notified for the enum declaration and
// every subsequent variant definition.
func WithHooks(hooks observe.Hooks) EnumOption {
	return func(e *Enum) {
		e.hooks = append(e.hooks, hooks...)
	}
}

// NewEnum declares a named enum with no variants.
func NewEnum(name string, opts ...EnumOption) *Enum {
	e := &Enum{
		id:     uuid.NewString(),
		name:   name,
		byName: make(map[string]*Type),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.hooks.Enabled() {
		// A failing hook cannot undo the declared enum; hook errors only
		// surface on variant definitions.
		_ = e.hooks.Notify(context.Background(), observe.Event{
			Kind:       observe.KindEnumDeclared,
			Enum:       name,
			EnumID:     e.id,
			OccurredAt: time.Now(),
		})
	}
	return e
}

// ID returns the definition identity assigned when the enum was declared.
func (e *Enum) ID() string {
	return e.id
}

// Name returns the declared enum name.
func (e *Enum) Name() string {
	return e.name
}

// Variant defines a new variant type owned by this enum. Member validation
// and the construction contract are identical to Define.
func (e *Enum) Variant(name string, members []string, opts ...DefineOption) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("variant: enum %s: variant name must not be empty", e.name)
	}
	tokens := make([]any, len(members))
	for i, member := range members {
		tokens[i] = member
	}
	set, err := NewMemberSet(tokens...)
	if err != nil {
		return nil, err
	}
	return e.defineVariant(name, set, opts)
}

func (e *Enum) defineVariant(name string, set MemberSet, opts []DefineOption) (*Type, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.byName[name]; exists {
		return nil, fmt.Errorf("variant: enum %s: variant %q already declared", e.name, name)
	}
	opts = append(opts, WithDefineHooks(e.hooks))
	t, err := newType(name, e, set, opts)
	if err != nil {
		return nil, err
	}
	e.byName[name] = t
	e.variants = append(e.variants, t)
	return t, nil
}

// MustVariant is Variant panicking on error; intended for declarations fixed
// at program start.
func (e *Enum) MustVariant(name string, members []string, opts ...DefineOption) *Type {
	t, err := e.Variant(name, members, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Variants returns the registered variant types in declaration order. The
// slice is a copy.
func (e *Enum) Variants() []*Type {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*Type(nil), e.variants...)
}

// Lookup returns the variant registered under name.
func (e *Enum) Lookup(name string) (*Type, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.byName[name]
	return t, ok
}

// Owns reports whether t was declared under this enum.
func (e *Enum) Owns(t *Type) bool {
	return t != nil && t.enum == e
}

// Contains reports whether v's runtime type belongs to this enum.
func (e *Enum) Contains(v *Value) bool {
	return v != nil && v.typ.enum == e
}

// CaseEq is the case-matching predicate used by pattern dispatch. An *Enum
// pattern matches the types it owns and their values; a *Type pattern
// matches itself and its values; a *Value pattern matches structurally
// equal values. Anything else falls back to plain deep equality.
func CaseEq(pattern, candidate any) bool {
	switch p := pattern.(type) {
	case *Enum:
		switch c := candidate.(type) {
		case *Enum:
			return p == c
		case *Type:
			return p.Owns(c)
		case *Value:
			return p.Contains(c)
		default:
			return false
		}
	case *Type:
		switch c := candidate.(type) {
		case *Type:
			return p == c
		case *Value:
			return p.Is(c)
		default:
			return false
		}
	case *Value:
		if c, ok := candidate.(*Value); ok {
			return Equal(p, c)
		}
		return false
	default:
		return reflect.DeepEqual(pattern, candidate)
	}
}
