package corowait

// Kind identifies a contract violation raised by this package, as opposed
// to an error returned by fn or by an awaited Awaitable (which are never
// wrapped — see Async and Await).
type Kind string

const (
	// KindIllegalContext is returned by Await when it is called from a
	// goroutine that is not a stack owned by some in-flight Async call.
	KindIllegalContext Kind = "illegal-context"
	// KindNoSuspension is returned by Async when WithRequireSuspension(true)
	// was set but fn returned without ever calling Await.
	KindNoSuspension Kind = "no-suspension"
)

// ContractError is corowait's own failure kind, distinct from whatever fn
// or an Awaitable returns. Two package-level sentinels, ErrIllegalContext
// and ErrNoSuspension, are the values callers should compare against with
// errors.Is.
type ContractError struct {
	Kind Kind
	msg  string
}

func (e *ContractError) Error() string { return e.msg }

// ErrIllegalContext is returned by Await when called outside any Async's
// child stack.
var ErrIllegalContext = &ContractError{
	Kind: KindIllegalContext,
	msg:  "corowait: Await called outside an Async-owned goroutine",
}

// ErrNoSuspension is returned by Async when require_suspension is set and fn
// returned without ever calling Await.
var ErrNoSuspension = &ContractError{
	Kind: KindNoSuspension,
	msg:  "corowait: fn returned without suspending, but suspension was required",
}
