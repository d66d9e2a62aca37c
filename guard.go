package variant

import "time"

// GuardContext carries the inputs a guard expression evaluates against. The
// matched value's fields are flattened into the expression environment by
// member name.
type GuardContext struct {
	Value    *Value
	Fields   Fields
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx GuardContext) withDefaultNow() GuardContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx GuardContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx GuardContext) withDefaultMaps() GuardContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx GuardContext) withValueFields() GuardContext {
	if ctx.Fields == nil && ctx.Value != nil {
		ctx.Fields = ctx.Value.ToMap()
	}
	if ctx.Fields == nil {
		ctx.Fields = Fields{}
	}
	return ctx
}

func (ctx GuardContext) withDefaults() GuardContext {
	return ctx.withDefaultNow().withDefaultMaps().withValueFields()
}

func (ctx GuardContext) variantLabel() string {
	if ctx.Value != nil {
		return ctx.Value.typ.name
	}
	return "unknown"
}

// Evaluator executes guard expressions against a guard context.
type Evaluator interface {
	Evaluate(ctx GuardContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledGuard, error)
}

// CompiledGuard represents a reusable guard program.
type CompiledGuard interface {
	Evaluate(ctx GuardContext) (any, error)
}

// CompileOption configures guard compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}
