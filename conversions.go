package sonparser

import (
	"math"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Conversions
///////////////////////////////////////////////////////////////////////////////

// DefaultTimeLayouts are tried in order by Time.
var DefaultTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// Conversion parsers built on the primitives. They fail with
// "<actual> is not '<name>'" whether the primitive check or the conversion
// rejected the input.
var (
	// Integer accepts a number with no fractional part that fits an int64.
	Integer = And(Number, Custom(func(f float64, mk Makers[int64]) Result[int64] {
		if math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
			return mk.Failure("", ExpectedInteger)
		}
		return mk.Success(int64(f))
	})).DescFromExpected(ExpectedInteger)

	// UUID accepts a string holding a UUID in any form uuid.Parse accepts.
	UUID = And(String, Custom(func(s string, mk Makers[uuid.UUID]) Result[uuid.UUID] {
		id, err := uuid.Parse(s)
		if err != nil {
			return mk.Failure(err.Error(), ExpectedUUID)
		}
		return mk.Success(id)
	})).DescFromExpected(ExpectedUUID)

	// Time accepts a string in one of DefaultTimeLayouts.
	Time = TimeLayouts(DefaultTimeLayouts...)
)

// TimeLayouts accepts a string matching one of layouts, tried in order.
func TimeLayouts(layouts ...string) Parser[any, time.Time] {
	return And(String, Custom(func(s string, mk Makers[time.Time]) Result[time.Time] {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return mk.Success(t)
			}
		}
		return mk.Failure("", ExpectedTime)
	})).DescFromExpected(ExpectedTime)
}
