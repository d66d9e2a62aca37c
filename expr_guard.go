package variant

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprGuardOption configures an expr guard evaluator instance.
type ExprGuardOption func(*exprGuard)

// ExprWithProgramCache wires a ProgramCache into the expr guard evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprGuardOption {
	return func(e *exprGuard) {
		e.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr guard
// evaluator.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprGuardOption {
	return func(e *exprGuard) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

// exprGuard executes guard expressions using github.com/expr-lang/expr.
type exprGuard struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprGuard constructs an Evaluator backed by expr-lang/expr.
func NewExprGuard(opts ...ExprGuardOption) Evaluator {
	e := &exprGuard{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate compiles and runs expression against the context's fields.
func (e *exprGuard) Evaluate(ctx GuardContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapGuardError("expr", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	env := e.environment(ctx)
	if e.cache == nil {
		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return nil, wrapGuardEvaluation("expr", expression, ctx.variantLabel(), err)
		}
		return result, nil
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapGuardEvaluation("expr", expression, ctx.variantLabel(), err)
	}
	return result, nil
}

// Compile returns a compiled guard that evaluates expression per invocation.
func (e *exprGuard) Compile(expression string, _ ...CompileOption) (CompiledGuard, error) {
	if expression == "" {
		return nil, wrapGuardError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledGuard{
		evaluator:  e,
		program:    program,
		expression: expression,
	}, nil
}

func (e *exprGuard) loadOrCompile(expression string) (*exprvm.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range e.registryNames() {
		fn := e.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapGuardEvaluation("expr", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledGuard struct {
	evaluator  *exprGuard
	program    *exprvm.Program
	expression string
}

func (g *exprCompiledGuard) Evaluate(ctx GuardContext) (any, error) {
	if g.evaluator == nil {
		return nil, wrapGuardError("expr", fmt.Errorf("compiled guard missing evaluator"))
	}
	ctx = ctx.withDefaults()
	if g.program == nil {
		return g.evaluator.Evaluate(ctx, g.expression)
	}
	env := g.evaluator.environment(ctx)
	result, err := exprlang.Run(g.program, env)
	if err != nil {
		return nil, wrapGuardEvaluation("expr", g.expression, ctx.variantLabel(), err)
	}
	return result, nil
}

func (e *exprGuard) environment(ctx GuardContext) map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for name, value := range ctx.Fields {
		env[name] = value
	}
	if e.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
		for _, name := range e.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return e.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (e *exprGuard) registryNames() []string {
	if e == nil || e.registry == nil {
		return nil
	}
	return e.registry.Names()
}

func (e *exprGuard) registryFunction(name string) func(...any) (any, error) {
	if e == nil || e.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return e.registry.Call(name, arguments...)
	}
}
