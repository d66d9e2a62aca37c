// Package trait validates, at composition time, that an implementation's
// method set exactly matches a named capability contract before merging the
// methods onto a target type. It is independent of the variant stack and
// composes with any target exposing AttachMethod.
package trait

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-set/v3"

	"github.com/goliatone/go-variant/pkg/observe"
)

// Method is a behavior merged onto a target. The receiver is whatever value
// the target dispatches methods on.
type Method = func(recv any, args ...any) (any, error)

// Target is anything a verified implementation can be merged onto.
// *variant.Type satisfies it.
type Target interface {
	Name() string
	AttachMethod(name string, fn Method) error
}

// ContractOption configures a contract at declaration time.
type ContractOption func(*Contract)

// WithHooks wires observation hooks notified on successful compositions.
func WithHooks(hooks observe.Hooks) ContractOption {
	return func(c *Contract) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// Contract names a capability and the exact method set an implementation
// must provide. The required set is frozen at declaration time.
type Contract struct {
	name     string
	required *set.Set[string]
	hooks    observe.Hooks

	mu        sync.Mutex
	satisfied map[Target]struct{}
}

// New declares a contract requiring exactly the given method names.
func New(name string, methods []string, opts ...ContractOption) *Contract {
	c := &Contract{
		name:      name,
		required:  set.From(methods),
		satisfied: make(map[Target]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Name returns the contract name.
func (c *Contract) Name() string {
	return c.name
}

// Required returns the required method names sorted alphabetically.
func (c *Contract) Required() []string {
	names := c.required.Slice()
	sort.Strings(names)
	return names
}

// Implementation is a candidate method body for a contract, tagged with the
// source location where it was declared; the location only feeds
// diagnostics.
type Implementation struct {
	methods  map[string]Method
	location string
}

// NewImplementation collects methods into an implementation block and
// captures the caller's file and line for diagnostics.
func NewImplementation(methods map[string]Method) Implementation {
	impl := Implementation{
		methods:  make(map[string]Method, len(methods)),
		location: callerLocation(2),
	}
	for name, fn := range methods {
		impl.methods[name] = fn
	}
	return impl
}

// Location returns the file:line where the implementation was declared.
func (impl Implementation) Location() string {
	return impl.location
}

// Methods returns the provided method names sorted alphabetically.
func (impl Implementation) Methods() []string {
	names := make([]string, 0, len(impl.methods))
	for name := range impl.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Implement verifies impl against the contract and, on success, merges every
// method onto target and records the target as satisfying the contract. The
// check runs once, here, not per call. Verification is exact: a missing
// required method fails with ErrMissingRequiredMethods, a method outside the
// contract fails with ErrUnexpectedMethods, and in both cases nothing is
// merged.
func (c *Contract) Implement(target Target, impl Implementation) error {
	if target == nil {
		return fmt.Errorf("trait: contract %q: target must not be nil", c.name)
	}

	provided := set.New[string](len(impl.methods))
	for name := range impl.methods {
		provided.Insert(name)
	}

	if missing := c.required.Difference(provided); missing.Size() > 0 {
		return &ConformanceError{
			Contract: c.name,
			Location: impl.location,
			Missing:  sortedSlice(missing),
		}
	}
	if extra := provided.Difference(c.required); extra.Size() > 0 {
		return &ConformanceError{
			Contract: c.name,
			Location: impl.location,
			Extra:    sortedSlice(extra),
		}
	}

	// The merge must be all-or-nothing and targets expose no detach, so
	// every method body is checked before the first attach.
	for _, name := range impl.Methods() {
		if name == "" {
			return fmt.Errorf("trait: contract %q at %s: method name must not be empty", c.name, impl.location)
		}
		if impl.methods[name] == nil {
			return fmt.Errorf("trait: contract %q at %s: method %q is nil", c.name, impl.location, name)
		}
	}

	for name, fn := range impl.methods {
		if err := target.AttachMethod(name, fn); err != nil {
			return fmt.Errorf("trait: contract %q: attach %q to %s: %w", c.name, name, target.Name(), err)
		}
	}

	c.mu.Lock()
	c.satisfied[target] = struct{}{}
	c.mu.Unlock()

	if c.hooks.Enabled() {
		_ = c.hooks.Notify(context.Background(), observe.Event{
			Kind:       observe.KindTraitComposed,
			Contract:   c.name,
			Target:     target.Name(),
			Members:    c.Required(),
			OccurredAt: time.Now(),
		})
	}
	return nil
}

// SatisfiedBy reports whether target passed a conformance check against this
// contract.
func (c *Contract) SatisfiedBy(target Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.satisfied[target]
	return ok
}

func sortedSlice(s set.Collection[string]) []string {
	names := s.Slice()
	sort.Strings(names)
	return names
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
