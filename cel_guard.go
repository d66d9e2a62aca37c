package variant

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELGuardOption configures the CEL guard evaluator.
type CELGuardOption func(*celGuard)

// CELWithProgramCache wires a ProgramCache into the CEL guard evaluator.
func CELWithProgramCache(cache ProgramCache) CELGuardOption {
	return func(e *celGuard) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL guard
// evaluator.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELGuardOption {
	return func(e *celGuard) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celGuard struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELGuard constructs an Evaluator backed by cel-go.
func NewCELGuard(opts ...CELGuardOption) Evaluator {
	e := &celGuard{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celGuard) Evaluate(ctx GuardContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapGuardError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, ctx.Fields)
	if err != nil {
		return nil, wrapGuardEvaluation("cel", expression, ctx.variantLabel(), err)
	}
	out, _, err := program.program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapGuardEvaluation("cel", expression, ctx.variantLabel(), err)
	}
	return out.Value(), nil
}

func (e *celGuard) Compile(expression string, _ ...CompileOption) (CompiledGuard, error) {
	if expression == "" {
		return nil, wrapGuardError("cel", fmt.Errorf("expression must not be empty"))
	}
	return &celCompiledGuard{
		evaluator:  e,
		expression: expression,
	}, nil
}

func (e *celGuard) loadOrCompile(expression string, fields Fields) (*celProgram, error) {
	if fields == nil {
		fields = Fields{}
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(fields)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (e *celGuard) buildEnv(fields Fields) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType},
			celgo.DynType,
			celgo.FunctionBinding(e.callBinding()),
		)))
	}
	for key := range fields {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celGuard) activation(ctx GuardContext) map[string]any {
	activation := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for key, value := range ctx.Fields {
		activation[key] = value
	}
	if e.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledGuard struct {
	evaluator  *celGuard
	expression string
}

func (g *celCompiledGuard) Evaluate(ctx GuardContext) (any, error) {
	if g.evaluator == nil {
		return nil, wrapGuardError("cel", fmt.Errorf("compiled guard missing evaluator"))
	}
	ctx = ctx.withDefaults()
	program, err := g.evaluator.loadOrCompile(g.expression, ctx.Fields)
	if err != nil {
		return nil, wrapGuardEvaluation("cel", g.expression, ctx.variantLabel(), err)
	}
	out, _, err := program.program.Eval(g.evaluator.activation(ctx))
	if err != nil {
		return nil, wrapGuardEvaluation("cel", g.expression, ctx.variantLabel(), err)
	}
	return out.Value(), nil
}

func (e *celGuard) callBinding() functions.FunctionOp {
	return func(values ...ref.Val) ref.Val {
		if e.registry == nil {
			return types.NewErr("variant: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("variant: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("variant: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
