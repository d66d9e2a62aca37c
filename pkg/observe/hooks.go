// Package observe fans out definition events to caller-supplied hooks so
// tooling can audit enum declarations, variant definitions and trait
// compositions as they happen.
package observe

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event kinds emitted by the variant and trait packages.
const (
	KindEnumDeclared   = "enum.declared"
	KindVariantDefined = "variant.defined"
	KindTraitComposed  = "trait.composed"
)

// Event describes one definition occurrence. Identity fields are
// stringly-typed UUIDs so call sites stay decoupled from a UUID type.
type Event struct {
	Kind       string
	Enum       string
	EnumID     string
	Variant    string
	VariantID  string
	Members    []string
	Contract   string
	Target     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives normalized definition events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify forwards the event to all hooks, returning a joined error if any
// fail. It normalizes the event and short-circuits when the kind is missing.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}

	normalized := NormalizeEvent(event)
	if normalized.Kind == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims whitespace, clones members and metadata, and ensures
// a timestamp is present.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Kind = strings.TrimSpace(event.Kind)
	normalized.Enum = strings.TrimSpace(event.Enum)
	normalized.EnumID = strings.TrimSpace(event.EnumID)
	normalized.Variant = strings.TrimSpace(event.Variant)
	normalized.VariantID = strings.TrimSpace(event.VariantID)
	normalized.Contract = strings.TrimSpace(event.Contract)
	normalized.Target = strings.TrimSpace(event.Target)
	normalized.Metadata = cloneMap(event.Metadata)
	if len(event.Members) > 0 {
		normalized.Members = append([]string{}, event.Members...)
	} else {
		normalized.Members = nil
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// CaptureHook records every event it receives; useful in tests and audits.
type CaptureHook struct {
	Events []Event
}

// Notify appends the event to the capture buffer.
func (c *CaptureHook) Notify(_ context.Context, event Event) error {
	c.Events = append(c.Events, event)
	return nil
}
