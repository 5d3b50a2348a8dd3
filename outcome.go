package sonparser

// Outcome wraps the result of a reporting parse.
type Outcome[T any] struct {
	result Result[T]
}

func newOutcome[T any](r Result[T]) *Outcome[T] {
	return &Outcome[T]{result: r}
}

// IsSuccess reports whether the parse succeeded.
func (o *Outcome[T]) IsSuccess() bool {
	return o.result.ok
}

// Report hands a failure to r and returns o. A nil r renders with the nested
// reporter on standard output. Successes are not reported.
func (o *Outcome[T]) Report(r Reporter) *Outcome[T] {
	if o.result.ok {
		return o
	}
	if r == nil {
		r = NestReporter(StdoutSink, NestReporterOpts{})
	}
	o.result.err.Report(r)
	return o
}

// Except returns the value, or a *ParseError on failure. A message, when
// given, replaces the failure message of the error.
func (o *Outcome[T]) Except(message ...string) (T, error) {
	if o.result.ok {
		return o.result.value, nil
	}
	pe := newParseError(o.result.err)
	if len(message) > 0 {
		pe.Message = message[0]
	}
	var zero T
	return zero, pe
}

// ToSuccess returns the value, or def on failure.
func (o *Outcome[T]) ToSuccess(def T) T {
	return o.result.ValueSuccess(def)
}

// ToError returns the failure as a *ParseError, or def on success.
func (o *Outcome[T]) ToError(def error) error {
	if o.result.ok {
		return def
	}
	return newParseError(o.result.err)
}

// Err returns the failure as a *ParseError, or nil on success.
func (o *Outcome[T]) Err() error {
	return o.ToError(nil)
}

// Node returns the error tree, or nil on success.
func (o *Outcome[T]) Node() *ErrorNode {
	return o.result.ValueFailure(nil)
}

// Result returns the wrapped result.
func (o *Outcome[T]) Result() Result[T] {
	return o.result
}

// Future returns a Future resolved with the outcome.
func (o *Outcome[T]) Future() *Future[T] {
	f := newFuture[T]()
	f.resolve(o.Except())
	return f
}

// FoldOutcome eliminates o into a single value.
func FoldOutcome[T, R any](o *Outcome[T], onFailure func(*ErrorNode) R, onSuccess func(T) R) R {
	return CaseOf(o.result,
		func(err *ErrorNode, _ Flags) R { return onFailure(err) },
		func(in Input[T]) R { return onSuccess(in.Value) },
	)
}

// MapOutcome transforms the value of a successful outcome.
func MapOutcome[T, U any](o *Outcome[T], f func(T) U) *Outcome[U] {
	return newOutcome(MapResult(o.result, f))
}
