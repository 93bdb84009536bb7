package corowait

import (
	"context"

	"corowait/internal/coro"
)

// Await is the suspension primitive (§4.2): a plain function, callable from
// anywhere on the synchronous call stack of an Async-adopted fn, that
// suspends the whole chain until aw completes and returns its result as an
// ordinary value — or its error as an ordinary error, which the caller is
// free to check or ignore exactly as with any other Go call.
//
// Await takes no context.Context and no driver handle: it discovers the
// stack it is running on from the calling goroutine itself. Calling it from
// a goroutine that is not a child owned by some in-flight Async returns
// ErrIllegalContext.
func Await[T any](aw Awaitable[T]) (T, error) {
	var zero T

	stack, ok := coro.Current()
	if !ok {
		return zero, ErrIllegalContext
	}

	run := func() (any, error) {
		return aw.Await(stack.Marker().(context.Context))
	}

	v, err := stack.Yield(run)
	if err != nil {
		return zero, err
	}
	result, _ := v.(T)
	return result, nil
}
