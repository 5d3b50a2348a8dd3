package sonparser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Decoder turns the bytes of a document into the loosely-typed value model:
// nil, bool, numbers, string, []any and *OrderedMap.
type Decoder interface {
	// Name returns a unique identifier for this decoder.
	Name() string
	// Extensions returns the lower-case file extensions, dot included, that
	// select this decoder.
	Extensions() []string
	// Decode converts data into a value.
	Decode(data []byte) (any, error)
}

// DecoderRegistry maps decoder names and file extensions to decoders. It is
// safe for concurrent use.
type DecoderRegistry struct {
	mu          sync.RWMutex
	byName      map[string]Decoder
	byExtension map[string]Decoder
}

var (
	_defaultDecoders []Decoder = nil
)

type DecoderRegistryOpts struct {
	Decoders        []Decoder
	ExcludeDefaults bool
}

// NewDecoderRegistry builds a registry holding the default JSON and YAML
// decoders, unless excluded, followed by opts.Decoders.
func NewDecoderRegistry(opts DecoderRegistryOpts) (*DecoderRegistry, error) {
	reg := &DecoderRegistry{
		byName:      make(map[string]Decoder),
		byExtension: make(map[string]Decoder),
	}

	if !opts.ExcludeDefaults {
		for _, decoder := range _defaultDecoders {
			if err := reg.Register(decoder); err != nil {
				return nil, err
			}
		}
	}

	for _, decoder := range opts.Decoders {
		if err := reg.Register(decoder); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Register adds decoder. Its extensions replace any earlier mapping; its
// name must be new.
func (reg *DecoderRegistry) Register(decoder Decoder) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	name := decoder.Name()
	if _, exists := reg.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDecoderAlreadyRegistered, name)
	}

	reg.byName[name] = decoder
	for _, ext := range decoder.Extensions() {
		reg.byExtension[strings.ToLower(ext)] = decoder
	}
	return nil
}

// ByName returns the decoder registered under name.
func (reg *DecoderRegistry) ByName(name string) (Decoder, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	decoder, ok := reg.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDecoderNotFound, name)
	}
	return decoder, nil
}

// ForPath returns the decoder selected by the extension of path.
func (reg *DecoderRegistry) ForPath(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	decoder, ok := reg.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return decoder, nil
}

// Names returns the names of the registered decoders.
func (reg *DecoderRegistry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.byName))
	for name := range reg.byName {
		names = append(names, name)
	}
	return names
}
