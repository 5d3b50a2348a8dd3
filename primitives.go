package sonparser

// typeParser accepts values whose kind passes check, converting them with
// conv. Failures read "<actual> is not '<name>'".
func typeParser[T any](kind Kind, conv func(any) (T, bool)) Parser[any, T] {
	return Custom(func(v any, mk Makers[T]) Result[T] {
		if KindOf(v) == kind {
			if out, ok := conv(v); ok {
				return mk.Success(out)
			}
		}
		return mk.Failure("", kind.String())
	}).DescFromExpected(kind.String())
}

// Primitive parsers. Each checks the kind of the input and fails with a leaf
// whose expected name is the kind and whose actual value is the canonical
// form of the input.
var (
	Boolean = typeParser(KindBoolean, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})

	// Number accepts every Go numeric type and yields a float64.
	Number = typeParser(KindNumber, toFloat)

	String = typeParser(KindString, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})

	// Object accepts an object but not an array, and yields a plain map.
	Object = typeParser(KindObject, func(v any) (map[string]any, bool) {
		o, ok := asObject(v)
		if !ok {
			return nil, false
		}
		return o.Map(), true
	})

	// objectView is Object without giving up the key order.
	objectView = typeParser(KindObject, asObject)
)

// Nothing succeeds with d when the input is absent (nil or Undefined) and
// fails otherwise.
func Nothing[T any](d T) Parser[any, T] {
	return Custom(func(v any, mk Makers[T]) Result[T] {
		if isNothing(v) {
			return mk.Success(d)
		}
		return mk.Failure("", "")
	}).DescFromExpected(kindNames[KindUndefined], kindNames[KindNull])
}
