package sonparser

import "strconv"

///////////////////////////////////////////////////////////////////////////////
// Aggregation
///////////////////////////////////////////////////////////////////////////////

// collect runs step for positions 0..n-1 and folds the results.
//
// Without reporting it stops at the first failure, before recording it, so
// fewer than n results are kept and the parse fails with a bare generic
// node. In reporting mode every position is evaluated and each failure
// becomes a labelled child of one generic node, in position order.
func collect[In, T any](in Input[In], expected string, n int, step func(i int) (Label, Result[T])) Result[[]T] {
	labels := make([]Label, 0, n)
	results := make([]Result[T], 0, n)
	for i := 0; i < n; i++ {
		label, res := step(i)
		if !res.ok && !in.Flags.IsReport {
			break
		}
		labels = append(labels, label)
		results = append(results, res)
	}

	if len(results) < n {
		return Failure[[]T](elemFailure(in, expected), in.Flags)
	}

	var node *ErrorNode
	values := make([]T, 0, n)
	for i, res := range results {
		if !res.ok {
			if node == nil {
				node = elemFailure(in, expected)
			}
			node = node.WithChild(labels[i], res.err)
			continue
		}
		values = append(values, res.value)
	}
	if node != nil {
		return Failure[[]T](node, in.Flags)
	}
	return makeSuccess(in, values)
}

// elemFailure is the generic node of a structural failure on in.
func elemFailure[T any](in Input[T], expected string) *ErrorNode {
	return NewErrorNode(elemFailureMessage(expected), expected, Stringify(any(in.Value)))
}

// notA fails in with "<actual> is not '<expected>'".
func notA[U, T any](in Input[T], expected string) Result[U] {
	actual := Stringify(any(in.Value))
	return makeFailureActual[U](in, actual+" is not '"+expected+"'", expected, actual)
}

///////////////////////////////////////////////////////////////////////////////
// Array
///////////////////////////////////////////////////////////////////////////////

// Array parses every element of an array with elem. Element failures are
// labelled by their index.
func Array[T any](elem Parser[any, T]) Parser[any, []T] {
	return NewParser(func(in Input[any]) Result[[]T] {
		items, ok := in.Value.([]any)
		if !ok {
			return notA[[]T](in, ExpectedArray)
		}
		return collect(in, ExpectedArray, len(items), func(i int) (Label, Result[T]) {
			return IndexLabel(i), elem.Run(Input[any]{Value: items[i], Flags: in.Flags})
		})
	})
}

///////////////////////////////////////////////////////////////////////////////
// Property set
///////////////////////////////////////////////////////////////////////////////

// Property pairs a property name with the parser for its value.
type Property struct {
	Name   string
	Parser Parser[any, any]
}

// Prop builds a Property from a typed parser.
func Prop[T any](name string, p Parser[any, T]) Property {
	return Property{Name: name, Parser: p.Erase()}
}

// HasProperties parses an object by its declared properties, in declaration
// order. A missing property is parsed as Undefined. The output holds exactly
// the declared properties; other input properties are dropped.
func HasProperties(props ...Property) Parser[any, map[string]any] {
	return And(objectView, NewParser(func(in Input[*OrderedMap]) Result[map[string]any] {
		res := collect(in, ExpectedObject, len(props), func(i int) (Label, Result[any]) {
			v, ok := in.Value.Get(props[i].Name)
			if !ok {
				v = Undefined
			}
			return PropertyLabel(props[i].Name), props[i].Parser.Run(Input[any]{Value: v, Flags: in.Flags})
		})
		return MapResult(res, func(values []any) map[string]any {
			out := make(map[string]any, len(props))
			for i, p := range props {
				out[p.Name] = values[i]
			}
			return out
		})
	}))
}

///////////////////////////////////////////////////////////////////////////////
// Hash
///////////////////////////////////////////////////////////////////////////////

// Hash parses every value of an object with elem, keeping the keys. Failures
// are labelled by key, in key order. The label renders as ".key" in nested
// and list paths and as the bare key in JSON reports.
func Hash[T any](elem Parser[any, T]) Parser[any, map[string]T] {
	return And(objectView, NewParser(func(in Input[*OrderedMap]) Result[map[string]T] {
		keys := in.Value.Keys()
		res := collect(in, ExpectedHash, len(keys), func(i int) (Label, Result[T]) {
			v, _ := in.Value.Get(keys[i])
			return PropertyLabel(keys[i]), elem.Run(Input[any]{Value: v, Flags: in.Flags})
		})
		return MapResult(res, func(values []T) map[string]T {
			out := make(map[string]T, len(keys))
			for i, k := range keys {
				out[k] = values[i]
			}
			return out
		})
	}))
}

///////////////////////////////////////////////////////////////////////////////
// Tuples
///////////////////////////////////////////////////////////////////////////////

// Tup1 is the value of Tuple1.
type Tup1[A any] struct {
	V1 A
}

// Tup2 is the value of Tuple2 and Seq2.
type Tup2[A, B any] struct {
	V1 A
	V2 B
}

// Tup3 is the value of Tuple3.
type Tup3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Tup4 is the value of Tuple4.
type Tup4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Tup5 is the value of Tuple5.
type Tup5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

// tuple parses an array of exactly len(parsers) elements positionally. A
// length mismatch is a leaf failure of its own.
func tuple[T any](parsers []Parser[any, any], build func(values []any) T) Parser[any, T] {
	expected := tupleExpected(len(parsers))
	return NewParser(func(in Input[any]) Result[T] {
		items, ok := in.Value.([]any)
		if !ok {
			return notA[T](in, expected)
		}
		if len(items) != len(parsers) {
			actual := Stringify(in.Value)
			return makeFailureActual[T](in,
				actual+" is not '"+expected+"' (length "+strconv.Itoa(len(items))+", want "+strconv.Itoa(len(parsers))+")",
				expected, actual)
		}
		res := collect(in, expected, len(parsers), func(i int) (Label, Result[any]) {
			return IndexLabel(i), parsers[i].Run(Input[any]{Value: items[i], Flags: in.Flags})
		})
		return MapResult(res, build)
	})
}

// cast asserts v to A. The values come from the matching typed parser, so
// the assertion only yields the zero value for a nil interface.
func cast[A any](v any) A {
	a, _ := v.(A)
	return a
}

// Tuple1 parses a one element array.
func Tuple1[A any](p1 Parser[any, A]) Parser[any, Tup1[A]] {
	return tuple([]Parser[any, any]{p1.Erase()}, func(v []any) Tup1[A] {
		return Tup1[A]{V1: cast[A](v[0])}
	})
}

// Tuple2 parses a two element array.
func Tuple2[A, B any](p1 Parser[any, A], p2 Parser[any, B]) Parser[any, Tup2[A, B]] {
	return tuple([]Parser[any, any]{p1.Erase(), p2.Erase()}, func(v []any) Tup2[A, B] {
		return Tup2[A, B]{V1: cast[A](v[0]), V2: cast[B](v[1])}
	})
}

// Tuple3 parses a three element array.
func Tuple3[A, B, C any](p1 Parser[any, A], p2 Parser[any, B], p3 Parser[any, C]) Parser[any, Tup3[A, B, C]] {
	return tuple([]Parser[any, any]{p1.Erase(), p2.Erase(), p3.Erase()}, func(v []any) Tup3[A, B, C] {
		return Tup3[A, B, C]{V1: cast[A](v[0]), V2: cast[B](v[1]), V3: cast[C](v[2])}
	})
}

// Tuple4 parses a four element array.
func Tuple4[A, B, C, D any](
	p1 Parser[any, A], p2 Parser[any, B], p3 Parser[any, C], p4 Parser[any, D],
) Parser[any, Tup4[A, B, C, D]] {
	return tuple([]Parser[any, any]{p1.Erase(), p2.Erase(), p3.Erase(), p4.Erase()}, func(v []any) Tup4[A, B, C, D] {
		return Tup4[A, B, C, D]{V1: cast[A](v[0]), V2: cast[B](v[1]), V3: cast[C](v[2]), V4: cast[D](v[3])}
	})
}

// Tuple5 parses a five element array.
func Tuple5[A, B, C, D, E any](
	p1 Parser[any, A], p2 Parser[any, B], p3 Parser[any, C], p4 Parser[any, D], p5 Parser[any, E],
) Parser[any, Tup5[A, B, C, D, E]] {
	parsers := []Parser[any, any]{p1.Erase(), p2.Erase(), p3.Erase(), p4.Erase(), p5.Erase()}
	return tuple(parsers, func(v []any) Tup5[A, B, C, D, E] {
		return Tup5[A, B, C, D, E]{
			V1: cast[A](v[0]),
			V2: cast[B](v[1]),
			V3: cast[C](v[2]),
			V4: cast[D](v[3]),
			V5: cast[E](v[4]),
		}
	})
}
