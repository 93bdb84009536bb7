package corowait

import (
	"context"

	"corowait/internal/coro"
)

// config holds the options Async accepts.
type config struct {
	requireSuspension bool
}

// Option configures a single Async call.
type Option func(*config)

// WithRequireSuspension makes Async fail with ErrNoSuspension if fn returns
// without ever calling Await. Off by default: a fn that happens not to
// suspend is not an error unless the caller opts into requiring it.
func WithRequireSuspension(require bool) Option {
	return func(c *config) { c.requireSuspension = require }
}

// Async is the driver (§4.1): it adopts the synchronous fn into the calling
// goroutine's asynchronous context, running fn on a dedicated child
// goroutine and pumping every Awaitable fn yields via Await until fn
// returns.
//
// Async itself blocks the calling goroutine — that is simply what a
// blocking Go function does — but it never blocks any other goroutine, and
// it honors ctx cancellation between round-trips exactly as a natively
// async implementation would.
func Async[R any](ctx context.Context, fn func() (R, error), opts ...Option) (R, error) {
	var zero R
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	parent, _ := coro.Current()
	child := coro.Spawn(parent, ctx)

	entry := func() (any, error) {
		v, err := fn()
		return v, err
	}

	msg := child.Start(entry)
	suspensions := 0
	for msg.Kind == coro.KindYield {
		if err := ctx.Err(); err != nil {
			msg = child.Resume(nil, err)
			suspensions++
			continue
		}

		suspensions++
		v, err := msg.Yield()
		msg = child.Resume(v, err)
	}

	switch msg.Kind {
	case coro.KindPanic:
		panic(msg.Panic)
	case coro.KindDone:
		if cfg.requireSuspension && suspensions == 0 {
			return zero, ErrNoSuspension
		}
		result, _ := msg.Result.(R)
		return result, msg.Err
	default:
		// unreachable: Start/Resume only ever return Yield, Done, or Panic.
		return zero, nil
	}
}
