package go_func_utils

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
)

// SafeGo runs fn on a new goroutine. A panic is written to logger together
// with its stack before being re-raised, so it survives a redirected stderr.
// When wg is non-nil it is incremented before the goroutine starts and
// released when fn returns.
func SafeGo(logger *log.Logger, wg *sync.WaitGroup, fn func()) {
	if wg != nil {
		wg.Add(1)
	}
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// SafeCall runs fn and turns a panic into an error, logging the stack
func SafeCall(logger *log.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("PANIC: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()
	return fn()
}
