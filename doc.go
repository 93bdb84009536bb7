// Package corowait lets a plain (non-async) Go function, running under
// Async, suspend on an Awaitable from anywhere in its call stack by calling
// Await — without being passed a context.Context or driver handle, and
// without its callers needing to know it ever suspends at all.
package corowait
