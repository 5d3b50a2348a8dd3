package sonparser

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/segmentio/encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// Kinds
///////////////////////////////////////////////////////////////////////////////

// Kind classifies a loosely-typed input value.
type Kind int

const (
	KindUnknown Kind = iota
	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// kindNames is the single source of truth for the expected-type names used
// in failure messages. Adding a primitive means adding a row here.
var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBoolean:   "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
}

// String returns the expected-type name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// undefinedValue is the type of Undefined.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined marks an absent value, such as a declared property that is
// missing from the input object. It is distinct from nil, which is null.
var Undefined = undefinedValue{}

// KindOf classifies v. Inputs are expected in the shapes produced by JSON or
// YAML decoding: nil, Undefined, bool, Go numbers, string, []any,
// map[string]any and *OrderedMap. Anything else is KindUnknown.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case undefinedValue:
		return KindUndefined
	case bool:
		return KindBoolean
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case *OrderedMap:
		if t == nil {
			return KindNull
		}
		return KindObject
	default:
		return KindUnknown
	}
}

// isNothing reports whether v is absent (Undefined) or null.
func isNothing(v any) bool {
	k := KindOf(v)
	return k == KindUndefined || k == KindNull
}

// toFloat converts any Go number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

///////////////////////////////////////////////////////////////////////////////
// Ordered map
///////////////////////////////////////////////////////////////////////////////

// OrderedMap is an insertion-ordered string-keyed mapping. The document decoders
// produce *OrderedMap for every mapping so that hash parsing and error reports
// follow the order of the source document.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// OrderedMapFrom builds an OrderedMap from a plain map. Go maps carry no order, so
// the keys are sorted to keep traversal deterministic.
func OrderedMapFrom(m map[string]any) *OrderedMap {
	o := &OrderedMap{
		keys:   make([]string, 0, len(m)),
		values: make(map[string]any, len(m)),
	}
	for k, v := range m {
		o.keys = append(o.keys, k)
		o.values[k] = v
	}
	sort.Strings(o.keys)
	return o
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position. Set returns o for chaining.
func (o *OrderedMap) Set(key string, value any) *OrderedMap {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key.
func (o *OrderedMap) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (o *OrderedMap) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *OrderedMap) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Map returns a shallow copy of o as a plain map.
func (o *OrderedMap) Map() map[string]any {
	m := make(map[string]any, o.Len())
	for _, k := range o.Keys() {
		m[k] = o.values[k]
	}
	return m
}

// MarshalJSON renders o as a JSON object in insertion order.
func (o *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeCanonical(&buf, o)
	return buf.Bytes(), nil
}

// asObject returns an ordered view over an object-kinded value.
func asObject(v any) (*OrderedMap, bool) {
	switch t := v.(type) {
	case *OrderedMap:
		return t, t != nil
	case map[string]any:
		return OrderedMapFrom(t), true
	default:
		return nil, false
	}
}

///////////////////////////////////////////////////////////////////////////////
// Canonical stringification
///////////////////////////////////////////////////////////////////////////////

// Stringify renders v the way JSON.stringify would: quoted strings, shortest
// number form, true/false, null, compact arrays and objects. Undefined
// renders as the bare word undefined.
func Stringify(v any) string {
	if _, ok := v.(undefinedValue); ok {
		return "undefined"
	}
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.String()
}

func writeCanonical(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case nil, undefinedValue:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(quoteString(t))
	case []any:
		buf.WriteByte('[')
		for i, elem := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, elem)
		}
		buf.WriteByte(']')
	case map[string]any:
		writeCanonicalObject(buf, OrderedMapFrom(t))
	case *OrderedMap:
		if t == nil {
			buf.WriteString("null")
			return
		}
		writeCanonicalObject(buf, t)
	default:
		if f, ok := toFloat(v); ok {
			buf.WriteString(formatNumber(v, f))
			return
		}
		writeFallback(buf, v)
	}
}

func writeCanonicalObject(buf *bytes.Buffer, o *OrderedMap) {
	buf.WriteByte('{')
	first := true
	for _, k := range o.keys {
		value := o.values[k]
		// JSON.stringify drops undefined members
		if _, ok := value.(undefinedValue); ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(quoteString(k))
		buf.WriteByte(':')
		writeCanonical(buf, value)
	}
	buf.WriteByte('}')
}

// formatNumber follows the ES6 Number-to-String rules used by JSON.stringify.
// Non-finite numbers render as null.
func formatNumber(v any, f float64) string {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

// quoteString JSON-quotes s without HTML escaping.
func quoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func writeFallback(buf *bytes.Buffer, v any) {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		buf.WriteString(fmt.Sprintf("%v", v))
		return
	}
	buf.Write(bytes.TrimRight(out.Bytes(), "\n"))
}
