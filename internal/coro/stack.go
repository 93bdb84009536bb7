// Package coro provides the stackful-coroutine facility the corowait
// bridge is built on: one goroutine per child stack, with control transfer
// realized as a synchronous channel handshake instead of a real
// stack-switch, since Go has no such primitive.
package coro

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Kind distinguishes the three things a child stack can hand back to its
// driver on a given round-trip.
type Kind int

const (
	// KindYield means the child called Yield and is now suspended waiting
	// for Resume.
	KindYield Kind = iota
	// KindDone means the entry function returned normally.
	KindDone
	// KindPanic means the entry function (or something it called) panicked;
	// Panic holds the recovered panic value, unmodified.
	KindPanic
)

// Message is what a child stack hands back to its driver across the
// handshake channel, tagged by Kind.
type Message struct {
	Kind Kind

	// Valid when Kind == KindYield: the awaiting work the driver must
	// perform natively before calling Resume.
	Yield func() (any, error)

	// Valid when Kind == KindDone: the entry function's return values.
	Result any
	Err    error

	// Valid when Kind == KindPanic.
	Panic any
}

// Stack is the Child Stack Wrapper: a minimal record tagging a
// driver-created goroutine so the suspension primitive can validate it is
// being used from a legal context and so the driver can recover it.
type Stack struct {
	parent   *Stack
	marker   any
	finished atomic.Bool

	toChild  chan resumeMsg
	toDriver chan Message
}

type resumeMsg struct {
	value any
	err   error
}

// registry maps a goroutine id to the Stack it is running as, so Await can
// discover "am I on a driver-owned child" without being passed a handle.
var registry sync.Map // int64 -> *Stack

// Current reports the Stack the calling goroutine is running as, if any.
func Current() (*Stack, bool) {
	v, ok := registry.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return v.(*Stack), true
}

// Spawn creates a new, not-yet-started child context. parent is the stack
// the caller itself is running on, or nil if the caller is a root (native)
// stack. marker is the opaque runtime handle (typically a context.Context)
// captured at creation for later introspection.
func Spawn(parent *Stack, marker any) *Stack {
	return &Stack{
		parent:   parent,
		marker:   marker,
		toChild:  make(chan resumeMsg),
		toDriver: make(chan Message),
	}
}

// Parent returns the stack that created s, or nil for a root.
func (s *Stack) Parent() *Stack { return s.parent }

// Marker returns the opaque runtime handle captured at creation.
func (s *Stack) Marker() any { return s.marker }

// Finished reports whether entry has returned or panicked.
func (s *Stack) Finished() bool { return s.finished.Load() }

// Start runs entry on a freshly spawned goroutine owned by s and blocks
// until it either returns, panics, or calls Yield for the first time. It
// must be called exactly once per Stack.
func (s *Stack) Start(entry func() (any, error)) Message {
	go func() {
		gid := goid.Get()
		registry.Store(gid, s)
		defer registry.Delete(gid)
		defer s.recoverPanic()

		result, err := entry()
		s.finished.Store(true)
		s.toDriver <- Message{Kind: KindDone, Result: result, Err: err}
	}()
	return <-s.toDriver
}

// Resume delivers value/err back into the child at its suspended Yield
// call and blocks until the child yields again, finishes, or panics.
func (s *Stack) Resume(value any, err error) Message {
	s.toChild <- resumeMsg{value: value, err: err}
	return <-s.toDriver
}

// Yield is called from inside the goroutine s owns. It hands run up to the
// driver and blocks until the driver calls Resume.
func (s *Stack) Yield(run func() (any, error)) (any, error) {
	s.toDriver <- Message{Kind: KindYield, Yield: run}
	msg := <-s.toChild
	return msg.value, msg.err
}

func (s *Stack) recoverPanic() {
	if r := recover(); r != nil {
		s.finished.Store(true)
		s.toDriver <- Message{Kind: KindPanic, Panic: r}
	}
}

// There is deliberately no GC-finalizer-based leak diagnostic here. A child
// abandoned mid-Yield (its driver stops calling Resume) is not collectible:
// the child's own goroutine is parked on <-s.toChild, and a parked goroutine
// is still a GC root, so the Stack it references stays reachable for as
// long as that goroutine exists — which, having nothing left to wake it, is
// forever. runtime.SetFinalizer never sees finished == false in that case,
// because it never gets a chance to run at all. Detecting this kind of leak
// would need an explicit watchdog (e.g. a timeout on Resume), not GC.
