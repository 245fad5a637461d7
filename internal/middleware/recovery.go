// Package middleware provides panic containment for rule evaluation.
package middleware

import (
	"fmt"
	"runtime/debug"

	"oops/internal/logger"
)

// SafeCall invokes fn, converting a panic into an error. A misbehaving rule
// must never abort a whole correction pass.
func SafeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"error", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// SafeCallWithResult is SafeCall for functions that also return a value. The
// zero value is returned when the function panics.
func SafeCallWithResult[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"error", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
