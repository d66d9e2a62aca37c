package variant

type jsGuardConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSGuardOption configures the JS guard evaluator.
type JSGuardOption func(*jsGuardConfig)

// JSWithProgramCache applies a ProgramCache to the JS guard evaluator.
func JSWithProgramCache(cache ProgramCache) JSGuardOption {
	return func(cfg *jsGuardConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS guard
// evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSGuardOption {
	return func(cfg *jsGuardConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSGuardOptions(opts []JSGuardOption) jsGuardConfig {
	cfg := jsGuardConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
