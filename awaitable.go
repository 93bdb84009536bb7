package corowait

import "context"

// Awaitable is anything Async's driver can natively await on behalf of a
// suspended child: a value the host "asynchronous runtime" knows how to
// wait on to produce a result or an error. It plays the role the spec calls
// an "awaitable".
type Awaitable[T any] interface {
	Await(ctx context.Context) (T, error)
}

// FuncAwaitable adapts a plain blocking function into an Awaitable, for
// callers who don't want to define a dedicated type for a one-off suspend
// point (a DB query, a Sleep, an HTTP round trip).
type FuncAwaitable[T any] func(ctx context.Context) (T, error)

// Await implements Awaitable.
func (f FuncAwaitable[T]) Await(ctx context.Context) (T, error) { return f(ctx) }

// Func wraps fn as an Awaitable[T]. It exists purely for call-site
// readability: corowait.Await(corowait.Func(fn)) reads better than a bare
// type conversion at the call site.
func Func[T any](fn func(ctx context.Context) (T, error)) FuncAwaitable[T] {
	return FuncAwaitable[T](fn)
}
