package sonparser

import "strings"

///////////////////////////////////////////////////////////////////////////////
// Alternation and sequencing
///////////////////////////////////////////////////////////////////////////////

// Or tries p and, if it fails, tries q on the same input. When both fail the
// failure of q is returned as is: alternation reports the last attempt and
// does not merge error trees.
func (p Parser[In, Out]) Or(q Parser[In, Out]) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		if res := p.Run(in); res.ok {
			return res
		}
		return q.Run(in)
	})
}

// And feeds the value produced by p into q.
func And[A, B, C any](p Parser[A, B], q Parser[B, C]) Parser[A, C] {
	return NewParser(func(in Input[A]) Result[C] {
		return Chain(p.Run(in), q.Run)
	})
}

// Map transforms the value produced by p.
func Map[In, A, B any](p Parser[In, A], f func(A) B) Parser[In, B] {
	return NewParser(func(in Input[In]) Result[B] {
		return MapResult(p.Run(in), f)
	})
}

// Seq2 runs p and q on the same input and pairs their values.
//
// Without reporting the first failure is returned and q is skipped. In
// reporting mode both always run; a single failure is returned as is, and
// when both fail they become the children [0] and [1] of one seq2 failure.
func Seq2[In, A, B any](p Parser[In, A], q Parser[In, B]) Parser[In, Tup2[A, B]] {
	return NewParser(func(in Input[In]) Result[Tup2[A, B]] {
		left := p.Run(in)
		if !left.ok && !in.Flags.IsReport {
			return failAs[Tup2[A, B]](left)
		}
		right := q.Run(in)
		switch {
		case left.ok && right.ok:
			return makeSuccess(in, Tup2[A, B]{V1: left.value, V2: right.value})
		case left.ok:
			return failAs[Tup2[A, B]](right)
		case right.ok:
			return failAs[Tup2[A, B]](left)
		}
		node := NewErrorNode(elemFailureMessage(ExpectedSequence), ExpectedSequence, Stringify(any(in.Value))).
			WithChild(IndexLabel(0), left.err).
			WithChild(IndexLabel(1), right.err)
		return Failure[Tup2[A, B]](node, in.Flags)
	})
}

// Bind runs p, builds a second parser from its value with f, and runs that
// parser on the original input.
func Bind[In, A, B any](p Parser[In, A], f func(A) Parser[In, B]) Parser[In, B] {
	withInput := Seq2(p, Base[In]())
	return NewParser(func(in Input[In]) Result[B] {
		return Chain(withInput.Run(in), func(pair Input[Tup2[A, In]]) Result[B] {
			return f(pair.Value.V1).Run(Input[In]{Value: pair.Value.V2, Flags: pair.Flags})
		})
	})
}

///////////////////////////////////////////////////////////////////////////////
// Descriptions
///////////////////////////////////////////////////////////////////////////////

// Desc replaces the message of a failure, and its expected name when one is
// given. Actual and children are kept. Successes pass through.
func (p Parser[In, Out]) Desc(message string, expected ...string) Parser[In, Out] {
	exp := ""
	if len(expected) > 0 {
		exp = expected[0]
	}
	return NewParser(func(in Input[In]) Result[Out] {
		res := p.Run(in)
		if res.ok {
			return res
		}
		return Failure[Out](res.err.withDescription(message, exp), res.flags)
	})
}

// DescFromExpected describes a failure by the names it expected. One name
// yields "<actual> is not 'X'"; more yield "<actual> is neither 'A', 'B' or
// 'C'", which also becomes the expected name.
func (p Parser[In, Out]) DescFromExpected(names ...string) Parser[In, Out] {
	expected, phrase := describeExpected(names)
	return NewParser(func(in Input[In]) Result[Out] {
		res := p.Run(in)
		if res.ok {
			return res
		}
		return Failure[Out](res.err.withDescription(res.err.Actual+" is "+phrase, expected), res.flags)
	})
}

// describeExpected returns the expected name and the message phrase for
// names.
func describeExpected(names []string) (expected, phrase string) {
	switch len(names) {
	case 0:
		return DefaultExpected, "not '" + DefaultExpected + "'"
	case 1:
		return names[0], "not '" + names[0] + "'"
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	last := len(quoted) - 1
	expected = "neither " + strings.Join(quoted[:last], ", ") + " or " + quoted[last]
	return expected, expected
}

///////////////////////////////////////////////////////////////////////////////
// Observers
///////////////////////////////////////////////////////////////////////////////

// FailureFunc receives the unpacked root of a failure.
type FailureFunc func(message, expected, actual string)

// Then calls onSuccess with the value of a success, or onFail (if not nil)
// with the root of a failure. The result is not altered. Panics in the
// callbacks are not recovered.
func (p Parser[In, Out]) Then(onSuccess func(Out), onFail FailureFunc) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		res := p.Run(in)
		if res.ok {
			if onSuccess != nil {
				onSuccess(res.value)
			}
			return res
		}
		if onFail != nil {
			onFail(res.err.Message, res.err.Expected, res.err.Actual)
		}
		return res
	})
}

// Catch calls onFail with the root of a failure without altering the
// result.
func (p Parser[In, Out]) Catch(onFail FailureFunc) Parser[In, Out] {
	return p.Then(nil, onFail)
}

///////////////////////////////////////////////////////////////////////////////
// Defaults
///////////////////////////////////////////////////////////////////////////////

// Default turns every failure into a success holding d.
func (p Parser[In, Out]) Default(d Out) Parser[In, Out] {
	return NewParser(func(in Input[In]) Result[Out] {
		return p.Run(in).Catch(func(_ *ErrorNode, flags Flags) Input[Out] {
			return Input[Out]{Value: d, Flags: flags}
		})
	})
}

// Option succeeds with d when p fails on an absent input (nil or
// Undefined). A present input that p rejects still fails with the failure of
// p.
func (p Parser[In, Out]) Option(d Out) Parser[In, Out] {
	nothing := Nothing(d)
	return NewParser(func(in Input[In]) Result[Out] {
		res := p.Run(in)
		if res.ok {
			return res
		}
		if alt := nothing.Run(Input[any]{Value: any(in.Value), Flags: in.Flags}); alt.ok {
			return alt
		}
		return res
	})
}
