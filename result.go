package sonparser

// Flags travel unchanged through every parser of one invocation.
type Flags struct {
	// IsReport keeps structural parsers walking after a failure so the
	// complete error tree gets built. When false they stop at the first
	// failure.
	IsReport bool
}

// Input is a value paired with the flags of the current invocation.
type Input[T any] struct {
	Value T
	Flags Flags
}

// Result is the outcome of one parser invocation: either a converted value
// or an error tree, both carrying the invocation flags.
type Result[T any] struct {
	value T
	err   *ErrorNode
	flags Flags
	ok    bool
}

// Success builds a successful Result.
func Success[T any](in Input[T]) Result[T] {
	return Result[T]{value: in.Value, flags: in.Flags, ok: true}
}

// Failure builds a failed Result.
func Failure[T any](err *ErrorNode, flags Flags) Result[T] {
	return Result[T]{err: err, flags: flags}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Flags returns the flags r was produced under.
func (r Result[T]) Flags() Flags {
	return r.flags
}

// ValueSuccess returns the value on success and def otherwise.
func (r Result[T]) ValueSuccess(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// ValueFailure returns the error tree on failure and def otherwise.
func (r Result[T]) ValueFailure(def *ErrorNode) *ErrorNode {
	if r.ok {
		return def
	}
	return r.err
}

// Catch turns a failure into a success using f. Successes pass through and
// f is not called.
func (r Result[T]) Catch(f func(err *ErrorNode, flags Flags) Input[T]) Result[T] {
	if r.ok {
		return r
	}
	return Success(f(r.err, r.flags))
}

// Chain sequences f after a success. A failure is returned as is and f is
// not called.
func Chain[T, U any](r Result[T], f func(Input[T]) Result[U]) Result[U] {
	if !r.ok {
		return Failure[U](r.err, r.flags)
	}
	return f(Input[T]{Value: r.value, Flags: r.flags})
}

// MapResult transforms the value of a success.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Failure[U](r.err, r.flags)
	}
	return Success(Input[U]{Value: f(r.value), Flags: r.flags})
}

// CaseOf eliminates r into a single value.
func CaseOf[T, R any](
	r Result[T],
	onFailure func(err *ErrorNode, flags Flags) R,
	onSuccess func(Input[T]) R,
) R {
	if r.ok {
		return onSuccess(Input[T]{Value: r.value, Flags: r.flags})
	}
	return onFailure(r.err, r.flags)
}

// failAs retypes a failure.
func failAs[U, T any](r Result[T]) Result[U] {
	return Failure[U](r.err, r.flags)
}

// makeSuccess wraps v with the flags of in.
func makeSuccess[T, U any](in Input[T], v U) Result[U] {
	return Success(Input[U]{Value: v, Flags: in.Flags})
}

// makeFailure builds a leaf failure for in. Empty message and expected fall
// back to the defaults; actual is the canonical form of in.Value.
func makeFailure[U, T any](in Input[T], message, expected string) Result[U] {
	return makeFailureActual[U](in, message, expected, Stringify(any(in.Value)))
}

func makeFailureActual[U, T any](in Input[T], message, expected, actual string) Result[U] {
	if message == "" {
		message = DefaultFailureMessage
	}
	if expected == "" {
		expected = DefaultExpected
	}
	return Failure[U](NewErrorNode(message, expected, actual), in.Flags)
}
