package sonparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock decoder for testing
type MockDecoder struct {
	name       string
	extensions []string
	decodeFunc func(data []byte) (any, error)
}

func (m *MockDecoder) Name() string {
	return m.name
}

func (m *MockDecoder) Extensions() []string {
	return m.extensions
}

func (m *MockDecoder) Decode(data []byte) (any, error) {
	if m.decodeFunc != nil {
		return m.decodeFunc(data)
	}
	return string(data), nil
}

func TestDecoderRegistry(t *testing.T) {
	t.Run("NewDecoderRegistry_WithDefaults", func(t *testing.T) {
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{})
		require.NoError(t, err)

		for _, path := range []string{"a.json", "a.yaml", "a.yml", "A.JSON"} {
			_, err := registry.ForPath(path)
			assert.NoError(t, err, path)
		}
		assert.ElementsMatch(t, []string{JSONDecoderName, YAMLDecoderName}, registry.Names())
	})

	t.Run("NewDecoderRegistry_WithoutDefaults", func(t *testing.T) {
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{ExcludeDefaults: true})
		require.NoError(t, err)

		_, err = registry.ForPath("a.json")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Empty(t, registry.Names())
	})

	t.Run("NewDecoderRegistry_WithDecoders", func(t *testing.T) {
		mock := &MockDecoder{name: "text", extensions: []string{".TXT"}}
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{
			Decoders:        []Decoder{mock},
			ExcludeDefaults: true,
		})
		require.NoError(t, err)

		decoder, err := registry.ForPath("notes.txt")
		require.NoError(t, err)
		assert.Same(t, mock, decoder)
	})

	t.Run("Register_Duplicate", func(t *testing.T) {
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{})
		require.NoError(t, err)

		err = registry.Register(&MockDecoder{name: JSONDecoderName})
		assert.ErrorIs(t, err, ErrDecoderAlreadyRegistered)
		assert.True(t, strings.Contains(err.Error(), JSONDecoderName))
	})

	t.Run("NewDecoderRegistry_DuplicateOption", func(t *testing.T) {
		_, err := NewDecoderRegistry(DecoderRegistryOpts{
			Decoders: []Decoder{&MockDecoder{name: YAMLDecoderName}},
		})
		assert.ErrorIs(t, err, ErrDecoderAlreadyRegistered)
	})

	t.Run("Register_ReplacesExtension", func(t *testing.T) {
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{})
		require.NoError(t, err)

		mock := &MockDecoder{name: "strict-json", extensions: []string{".json"}}
		require.NoError(t, registry.Register(mock))

		decoder, err := registry.ForPath("a.json")
		require.NoError(t, err)
		assert.Same(t, mock, decoder)
	})

	t.Run("ByName", func(t *testing.T) {
		registry, err := NewDecoderRegistry(DecoderRegistryOpts{})
		require.NoError(t, err)

		decoder, err := registry.ByName(YAMLDecoderName)
		require.NoError(t, err)
		assert.Equal(t, YAMLDecoderName, decoder.Name())

		_, err = registry.ByName("missing")
		assert.ErrorIs(t, err, ErrDecoderNotFound)
	})
}
