//go:build js_eval

package variant

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsGuard struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSGuard constructs an Evaluator backed by goja.
func NewJSGuard(opts ...JSGuardOption) Evaluator {
	cfg := applyJSGuardOptions(opts)
	return &jsGuard{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (e *jsGuard) Evaluate(ctx GuardContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapGuardError("js", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	if e.cache == nil {
		return e.run(ctx, expression, nil)
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, expression, program)
}

func (e *jsGuard) Compile(expression string, _ ...CompileOption) (CompiledGuard, error) {
	if expression == "" {
		return nil, wrapGuardError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledGuard{
		evaluator:  e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *jsGuard) loadOrCompile(expression string) (*goja.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", e.wrapExpression(expression), false)
	if err != nil {
		return nil, wrapGuardEvaluation("js", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

func (e *jsGuard) run(ctx GuardContext, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	e.injectContext(vm, ctx)
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, wrapGuardEvaluation("js", expression, ctx.variantLabel(), err)
		}
		return value.Export(), nil
	}
	value, err := vm.RunString(e.wrapExpression(expression))
	if err != nil {
		return nil, wrapGuardEvaluation("js", expression, ctx.variantLabel(), err)
	}
	return value.Export(), nil
}

func (e *jsGuard) injectContext(vm *goja.Runtime, ctx GuardContext) {
	vm.Set("now", ctx.timestamp())
	vm.Set("args", ctx.Args)
	vm.Set("metadata", ctx.Metadata)
	for key, value := range ctx.Fields {
		vm.Set(key, value)
	}
	if e.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		})
		for _, name := range e.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return e.registry.Call(fn, arguments...)
			})
		}
	}
}

func (e *jsGuard) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledGuard struct {
	evaluator  *jsGuard
	expression string
	program    *goja.Program
}

func (g *jsCompiledGuard) Evaluate(ctx GuardContext) (any, error) {
	if g.evaluator == nil {
		return nil, wrapGuardError("js", fmt.Errorf("compiled guard missing evaluator"))
	}
	ctx = ctx.withDefaults()
	return g.evaluator.run(ctx, g.expression, g.program)
}

func jsGuardAvailable() bool {
	return true
}
