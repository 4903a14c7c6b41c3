// Package runtimex contains runtime extensions used to flag programmer
// errors. This package is inspired to https://pkg.go.dev/github.com/m-lab/go/rtx,
// except that it's simpler.
package runtimex

import "fmt"

// PanicOnError calls panic() if err is not nil.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

// CatchAssertion runs fn and returns the error carried by a panic raised by
// [PanicOnError]. Panics with other values are propagated.
func CatchAssertion(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()
	fn()
	return nil
}
