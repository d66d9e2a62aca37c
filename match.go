package variant

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoMatch is returned by Matcher.Match when no case accepts the value.
var ErrNoMatch = errors.New("variant: no case matched")

// Binding carries the fields extracted when a value matches a case, by
// position and by name.
type Binding struct {
	Value  *Value
	Type   *Type
	Tuple  []any
	Fields Fields
}

// Matches tests whether v belongs to pattern (a *Type or *Enum) and, on
// success, extracts its fields.
func Matches(v *Value, pattern any) (Binding, bool) {
	if v == nil || !CaseEq(pattern, v) {
		return Binding{}, false
	}
	return Binding{
		Value:  v,
		Type:   v.typ,
		Tuple:  v.Tuple(),
		Fields: v.ToMap(),
	}, true
}

// CaseFunc consumes the binding of a matched case.
type CaseFunc func(Binding) (any, error)

type matchCase struct {
	pattern any
	guard   string
	fn      CaseFunc
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// MatchWithEvaluator selects the guard engine; expr is the default.
func MatchWithEvaluator(evaluator Evaluator) MatcherOption {
	return func(m *Matcher) {
		m.evaluator = evaluator
	}
}

// MatchWithProgramCache wires a ProgramCache used by the default guard
// engine.
func MatchWithProgramCache(cache ProgramCache) MatcherOption {
	return func(m *Matcher) {
		m.cache = cache
	}
}

// MatchWithFunctionRegistry exposes registered functions to guard
// expressions evaluated by the default engine.
func MatchWithFunctionRegistry(registry *FunctionRegistry) MatcherOption {
	return func(m *Matcher) {
		if registry == nil {
			return
		}
		m.registry = registry.Clone()
	}
}

// MatchWithLogger records guard evaluations.
func MatchWithLogger(logger GuardLogger) MatcherOption {
	return func(m *Matcher) {
		if logger == nil {
			m.logger = noopGuardLogger{}
			return
		}
		m.logger = logger
	}
}

// Matcher dispatches a value to the first case whose pattern matches and
// whose guard, when present, evaluates to true. Cases run in registration
// order.
type Matcher struct {
	evaluator Evaluator
	cache     ProgramCache
	registry  *FunctionRegistry
	logger    GuardLogger
	cases     []matchCase
	fallback  func(*Value) (any, error)
}

// NewMatcher constructs an empty matcher.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Case registers an unguarded case for pattern (*Type, *Enum or *Value).
func (m *Matcher) Case(pattern any, fn CaseFunc) *Matcher {
	m.cases = append(m.cases, matchCase{pattern: pattern, fn: fn})
	return m
}

// When registers a guarded case: the pattern must match and guard must
// evaluate to true over the extracted fields.
func (m *Matcher) When(pattern any, guard string, fn CaseFunc) *Matcher {
	m.cases = append(m.cases, matchCase{pattern: pattern, guard: guard, fn: fn})
	return m
}

// Default registers the fallback invoked when no case matches.
func (m *Matcher) Default(fn func(*Value) (any, error)) *Matcher {
	m.fallback = fn
	return m
}

// Match dispatches v and returns the result of the selected case.
func (m *Matcher) Match(v *Value) (any, error) {
	for _, c := range m.cases {
		binding, ok := Matches(v, c.pattern)
		if !ok {
			continue
		}
		if c.guard != "" {
			pass, err := m.evalGuard(binding, c.guard)
			if err != nil {
				return nil, err
			}
			if !pass {
				continue
			}
		}
		if c.fn == nil {
			return nil, nil
		}
		return c.fn(binding)
	}
	if m.fallback != nil {
		return m.fallback(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMatch, Render(v))
}

func (m *Matcher) evalGuard(binding Binding, guard string) (bool, error) {
	evaluator := m.evaluator
	if evaluator == nil {
		opts := []ExprGuardOption{}
		if m.cache != nil {
			opts = append(opts, ExprWithProgramCache(m.cache))
		}
		if m.registry != nil {
			opts = append(opts, ExprWithFunctionRegistry(m.registry))
		}
		evaluator = NewExprGuard(opts...)
	}
	ctx := GuardContext{Value: binding.Value, Fields: binding.Fields}.withDefaults()
	engine := guardEngineName(evaluator)
	start := time.Now()
	result, err := evaluator.Evaluate(ctx, guard)
	duration := time.Since(start)
	err = wrapGuardEvaluation("", guard, ctx.variantLabel(), err)
	m.guardLogger().LogGuard(GuardLogEvent{
		Engine:   engine,
		Expr:     guard,
		Variant:  ctx.variantLabel(),
		Duration: duration,
		Err:      err,
	})
	if err != nil {
		return false, err
	}
	pass, ok := result.(bool)
	if !ok {
		return false, wrapGuardEvaluation(engine, guard, ctx.variantLabel(),
			fmt.Errorf("guard must evaluate to bool, got %T", result))
	}
	return pass, nil
}

func (m *Matcher) guardLogger() GuardLogger {
	if m.logger != nil {
		return m.logger
	}
	return noopGuardLogger{}
}

func guardEngineName(evaluator Evaluator) string {
	switch evaluator.(type) {
	case *exprGuard:
		return "expr"
	case *celGuard:
		return "cel"
	default:
		return fmt.Sprintf("%T", evaluator)
	}
}
