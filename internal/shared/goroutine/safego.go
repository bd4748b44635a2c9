// Package goroutine runs background work so that a panic is logged instead
// of crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"campusvoice/internal/shared/logger"
)

// SafeGo launches fn on its own goroutine with panic recovery.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		_ = Protect(log, name, func() error {
			fn()
			return nil
		})
	}()
}

// Protect calls fn and turns a panic into an error, logging the stack.
func Protect(log logger.Interface, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}
