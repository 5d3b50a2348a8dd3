package sonparser

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// YAMLDecoder decodes YAML documents through yaml.Node so that mappings keep
// their key order. Only the first document of a stream is decoded.
type YAMLDecoder struct{}

func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

func (yd *YAMLDecoder) Name() string {
	return YAMLDecoderName
}

func (yd *YAMLDecoder) Extensions() []string {
	return []string{".yaml", ".yml"}
}

func (yd *YAMLDecoder) Decode(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}
	return fromYAML(&root)
}

func fromYAML(node *yaml.Node) (any, error) {
	// an empty stream yields a zero node
	if node == nil || node.Kind == 0 {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAML(node.Content[0])

	case yaml.AliasNode:
		return fromYAML(node.Alias)

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromYAML(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case yaml.MappingNode:
		obj := NewOrderedMap()
		// Content alternates: key, value, key, value...
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := fromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, value)
		}
		return obj, nil

	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var v any
			if err := node.Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrDecodeDocument, node.Line, err)
			}
			return v, nil
		default:
			return node.Value, nil
		}
	}

	return nil, fmt.Errorf("%w: line %d: unexpected node kind %v", ErrDecodeDocument, node.Line, node.Kind)
}
