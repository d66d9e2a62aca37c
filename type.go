package variant

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-variant/pkg/observe"
)

// Method is a behavior attached to a variant type. The receiver is the
// *Value the method was invoked on.
type Method = func(recv any, args ...any) (any, error)

// Type describes one variant: a name, an optional owning enum and a frozen
// MemberSet. Types are created through Define or Enum.Variant and never
// change afterwards; the method table is the one exception and exists so
// trait compositions can merge verified behavior in.
type Type struct {
	id      string
	name    string
	enum    *Enum
	members MemberSet

	mu      sync.RWMutex
	methods map[string]Method
}

// DefineOption configures a type at definition time.
type DefineOption func(*defineConfig)

type defineConfig struct {
	methods map[string]Method
	hooks   observe.Hooks
}

// WithMethod attaches a named behavior to the type being defined. Later
// registrations under the same name win.
func WithMethod(name string, fn Method) DefineOption {
	return func(cfg *defineConfig) {
		if name == "" || fn == nil {
			return
		}
		if cfg.methods == nil {
			cfg.methods = make(map[string]Method)
		}
		cfg.methods[name] = fn
	}
}

// WithDefineHooks wires observation hooks notified when the definition
// succeeds.
func WithDefineHooks(hooks observe.Hooks) DefineOption {
	return func(cfg *defineConfig) {
		cfg.hooks = append(cfg.hooks, hooks...)
	}
}

func applyDefineOptions(opts []DefineOption) defineConfig {
	cfg := defineConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Define manufactures a standalone variant type from a validated member
// list. Use Enum.Variant to define a type owned by an enum.
func Define(name string, members []string, opts ...DefineOption) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("variant: type name must not be empty")
	}
	tokens := make([]any, len(members))
	for i, member := range members {
		tokens[i] = member
	}
	set, err := NewMemberSet(tokens...)
	if err != nil {
		return nil, err
	}
	return newType(name, nil, set, opts)
}

// MustDefine is Define panicking on error; intended for declarations fixed at
// program start.
func MustDefine(name string, members []string, opts ...DefineOption) *Type {
	t, err := Define(name, members, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func newType(name string, owner *Enum, members MemberSet, opts []DefineOption) (*Type, error) {
	cfg := applyDefineOptions(opts)
	t := &Type{
		id:      uuid.NewString(),
		name:    name,
		enum:    owner,
		members: members,
		methods: cfg.methods,
	}
	if t.methods == nil {
		t.methods = make(map[string]Method)
	}
	if cfg.hooks.Enabled() {
		event := observe.Event{
			Kind:       observe.KindVariantDefined,
			Variant:    name,
			VariantID:  t.id,
			Members:    members.Names(),
			OccurredAt: time.Now(),
		}
		if owner != nil {
			event.Enum = owner.name
			event.EnumID = owner.id
		}
		if err := cfg.hooks.Notify(context.Background(), event); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ID returns the definition identity assigned when the type was declared.
func (t *Type) ID() string {
	return t.id
}

// Name returns the declared type name.
func (t *Type) Name() string {
	return t.name
}

// Enum returns the owning enum, or nil for standalone types.
func (t *Type) Enum() *Enum {
	return t.enum
}

// Members returns the member names in declaration order.
func (t *Type) Members() []string {
	return t.members.Names()
}

// MemberSet returns the frozen member set registered at definition time.
func (t *Type) MemberSet() MemberSet {
	return t.members
}

// Define on a concrete type always fails: definition only exists at the base
// factory level, a declared type is final.
func (t *Type) Define(string, []string, ...DefineOption) (*Type, error) {
	return nil, &ConstructionError{Type: t.name, Err: ErrNotSupported}
}

// New constructs a value. Arguments are either positional, mapped in member
// order, or a Fields map with keyword semantics; supplying both in one call
// fails with ErrArityConflict. Only the Fields type switches to keyword form:
// a plain map[string]any is an ordinary positional value, so map-valued
// members construct without ambiguity. Construction is all-or-nothing.
func (t *Type) New(args ...any) (*Value, error) {
	return t.construct(args)
}

// Of is the subscript constructor: identical in contract to New, provided as
// the alternate call spelling.
func (t *Type) Of(args ...any) (*Value, error) {
	return t.construct(args)
}

// MustNew is New panicking on error.
func (t *Type) MustNew(args ...any) *Value {
	v, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return v
}

func (t *Type) construct(args []any) (*Value, error) {
	named := Fields(nil)
	positional := make([]any, 0, len(args))
	for _, arg := range args {
		if fields, ok := arg.(Fields); ok {
			if named == nil {
				named = make(Fields, len(fields))
			}
			for key, value := range fields {
				named[key] = value
			}
			continue
		}
		positional = append(positional, arg)
	}
	if named != nil && len(positional) > 0 {
		return nil, &ConstructionError{Type: t.name, Err: ErrArityConflict}
	}
	if named != nil {
		return t.constructKeyed(named)
	}
	return t.constructPositional(positional)
}

func (t *Type) constructPositional(args []any) (*Value, error) {
	if len(args) > t.members.Len() {
		return nil, &ConstructionError{
			Type: t.name,
			Err:  fmt.Errorf("%w: want at most %d, got %d", ErrArityMismatch, t.members.Len(), len(args)),
		}
	}
	if len(args) < t.members.Len() {
		return nil, &ConstructionError{
			Type:    t.name,
			Members: t.members.names[len(args):],
			Err:     ErrMissingMembers,
		}
	}
	return &Value{typ: t, fields: append([]any(nil), args...)}, nil
}

func (t *Type) constructKeyed(fields Fields) (*Value, error) {
	var unknown []string
	for key := range fields {
		if !t.members.Has(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ConstructionError{Type: t.name, Members: unknown, Err: ErrUnknownMember}
	}
	var missing []string
	for _, name := range t.members.names {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ConstructionError{Type: t.name, Members: missing, Err: ErrMissingMembers}
	}
	values := make([]any, t.members.Len())
	for i, name := range t.members.names {
		values[i] = fields[name]
	}
	return &Value{typ: t, fields: values}, nil
}

// AttachMethod merges a named behavior into the type's method table. It is
// the merge target used by trait composition; later attachments under the
// same name win.
func (t *Type) AttachMethod(name string, fn Method) error {
	if name == "" {
		return fmt.Errorf("variant: %s: method name must not be empty", t.name)
	}
	if fn == nil {
		return fmt.Errorf("variant: %s: method %q is nil", t.name, name)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.methods[name] = fn
	return nil
}

// Methods returns attached method names sorted alphabetically.
func (t *Type) Methods() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Type) method(name string) (Method, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.methods[name]
	return fn, ok
}

// Is reports whether v's runtime type is exactly this type.
func (t *Type) Is(v *Value) bool {
	return v != nil && v.typ == t
}
