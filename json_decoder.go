package sonparser

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONDecoder decodes JSON documents. Objects keep their key order.
type JSONDecoder struct{}

func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

func (jd *JSONDecoder) Name() string {
	return JSONDecoderName
}

func (jd *JSONDecoder) Extensions() []string {
	return []string{".json"}
}

func (jd *JSONDecoder) Decode(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrDecodeDocument)
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

// fromGJSON converts r into the value model. A repeated key keeps its first
// position and its last value.
func fromGJSON(r gjson.Result) any {
	switch r.Type {
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	case gjson.JSON:
		if r.IsArray() {
			items := make([]any, 0)
			r.ForEach(func(_, value gjson.Result) bool {
				items = append(items, fromGJSON(value))
				return true
			})
			return items
		}
		obj := NewOrderedMap()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.Str, fromGJSON(value))
			return true
		})
		return obj
	default:
		return nil
	}
}
