package sonparser

///////////////////////////////////////////////////////////////////////////////
// Parser
///////////////////////////////////////////////////////////////////////////////

// ParseFunc is the function wrapped by a Parser.
type ParseFunc[In, Out any] func(in Input[In]) Result[Out]

// Parser converts an In into an Out or fails with an error tree.
//
// A Parser holds no mutable state. Every combinator returns a new Parser and
// leaves its operands untouched, so one Parser value can be built once and
// shared freely, including between goroutines.
//
// The zero Parser behaves like Empty: it always fails.
type Parser[In, Out any] struct {
	fn ParseFunc[In, Out]
}

// NewParser wraps fn.
func NewParser[In, Out any](fn ParseFunc[In, Out]) Parser[In, Out] {
	return Parser[In, Out]{fn: fn}
}

// Run invokes the parser once on in.
func (p Parser[In, Out]) Run(in Input[In]) Result[Out] {
	if p.fn == nil {
		return makeFailure[Out](in, EmptyFailureMessage, DefaultExpected)
	}
	return p.fn(in)
}

// Erase widens the output type to any, for use in property lists and
// tuples.
func (p Parser[In, Out]) Erase() Parser[In, any] {
	return Map(p, func(v Out) any { return v })
}

///////////////////////////////////////////////////////////////////////////////
// Entry points
///////////////////////////////////////////////////////////////////////////////

// Parse runs p without reporting and returns the first failure as a
// *ParseError.
func (p Parser[In, Out]) Parse(v In) (Out, error) {
	res := p.Run(Input[In]{Value: v, Flags: Flags{IsReport: false}})
	if !res.ok {
		var zero Out
		return zero, newParseError(res.err)
	}
	return res.value, nil
}

// ParseWithResult runs p in reporting mode, building the complete error
// tree, and wraps the result.
func (p Parser[In, Out]) ParseWithResult(v In) *Outcome[Out] {
	return newOutcome(p.Run(Input[In]{Value: v, Flags: Flags{IsReport: true}}))
}

// ParseWithReporter is ParseWithResult(v).Report(r).Except().
func (p Parser[In, Out]) ParseWithReporter(v In, r Reporter) (Out, error) {
	return p.ParseWithResult(v).Report(r).Except()
}

// ParseAsync runs p in reporting mode and returns an already resolved
// Future.
func (p Parser[In, Out]) ParseAsync(v In) *Future[Out] {
	return p.ParseWithResult(v).Future()
}

///////////////////////////////////////////////////////////////////////////////
// Constant and custom parsers
///////////////////////////////////////////////////////////////////////////////

// Makers builds results for a Custom parser body. Failures take the
// canonical form of the current input as their actual value; it is only
// computed when a failure is built.
type Makers[Out any] struct {
	flags Flags
	input any
}

// Success returns a successful result holding v.
func (m Makers[Out]) Success(v Out) Result[Out] {
	return Success(Input[Out]{Value: v, Flags: m.flags})
}

// Failure returns a leaf failure. Empty strings select the default message
// and expected name.
func (m Makers[Out]) Failure(message, expected string) Result[Out] {
	return m.FailureWithActual(message, expected, Stringify(m.input))
}

// FailureWithActual is Failure with an explicit actual value.
func (m Makers[Out]) FailureWithActual(message, expected, actual string) Result[Out] {
	return makeFailureActual[Out](Input[struct{}]{Flags: m.flags}, message, expected, actual)
}

// Custom builds a parser from a plain function of the input value. Panics in
// fn are not recovered.
func Custom[In, Out any](fn func(v In, mk Makers[Out]) Result[Out]) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		return fn(in.Value, Makers[Out]{flags: in.Flags, input: any(in.Value)})
	})
}

// Succeed ignores its input and succeeds with v.
func Succeed[In, Out any](v Out) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		return makeSuccess(in, v)
	})
}

// Fail ignores its input and fails. Empty strings select the defaults.
func Fail[In, Out any](message, expected string) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		return makeFailure[Out](in, message, expected)
	})
}

// Base is the identity parser.
func Base[T any]() Parser[T, T] {
	return NewParser[T, T](Success[T])
}

// Empty always fails. It is the identity of alternation: Empty().Or(p) and
// p.Or(Empty()) accept exactly what p accepts.
func Empty[In, Out any]() Parser[In, Out] {
	return Parser[In, Out]{}
}

// OneOf folds parsers with Or, starting from Empty.
func OneOf[In, Out any](parsers ...Parser[In, Out]) Parser[In, Out] {
	acc := Empty[In, Out]()
	for i, p := range parsers {
		if i == 0 {
			acc = p
			continue
		}
		acc = acc.Or(p)
	}
	return acc
}
