package variant

import (
	"errors"
	"fmt"
	"strings"
)

// GuardError captures guard engine metadata alongside the originating error.
type GuardError struct {
	Engine  string
	Expr    string
	Variant string
	Err     error
}

func (e *GuardError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("variant: %s guard %s variant=%s: %v", e.Engine, describeGuard(e.Expr), e.Variant, e.Err)
}

func (e *GuardError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeGuard(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapGuardError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "variant:") {
		return err
	}
	return fmt.Errorf("variant: %s guard: %w", engine, err)
}

func wrapGuardEvaluation(engine, expr, variantName string, err error) error {
	if err == nil {
		return nil
	}

	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		if guardErr.Engine == "" {
			guardErr.Engine = engine
		}
		if guardErr.Expr == "" {
			guardErr.Expr = expr
		}
		if guardErr.Variant == "" {
			guardErr.Variant = variantName
		}
		return guardErr
	}

	return &GuardError{
		Engine:  engine,
		Expr:    expr,
		Variant: variantName,
		Err:     err,
	}
}
