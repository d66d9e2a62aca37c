//go:build !js_eval

package variant

// NewJSGuard is unavailable without the js_eval build tag.
func NewJSGuard(opts ...JSGuardOption) Evaluator {
	_ = applyJSGuardOptions(opts)
	return nil
}

func jsGuardAvailable() bool {
	return false
}
