package sonparser

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

///////////////////////////////////////////////////////////////////////////////
// Loader
///////////////////////////////////////////////////////////////////////////////

// Loader reads documents from disk and decodes them with the decoder
// selected by file extension, optionally caching the decoded value.
type Loader struct {
	registry *DecoderRegistry
	cache    *DocumentCache
	logger   Logger
}

// LoaderContext is a Loader curried with a specific decoder.
type LoaderContext struct {
	loader      *Loader
	decoderName string
}

type LoaderOpts struct {
	// Registry selects decoders. Nil uses a registry of the defaults.
	Registry *DecoderRegistry
	// UseCache keeps decoded documents until their file changes.
	UseCache bool
	// Logger receives loading events. Nil discards them.
	Logger Logger
}

func NewLoader(opts LoaderOpts) (*Loader, error) {
	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = NewDecoderRegistry(DecoderRegistryOpts{}); err != nil {
			return nil, err
		}
	}

	l := &Loader{
		registry: reg,
		logger:   opts.Logger,
	}
	if l.logger == nil {
		l.logger = NopLogger{}
	}
	if opts.UseCache {
		l.cache = NewDocumentCache()
	}
	return l, nil
}

// Registry returns the decoder registry of l.
func (l *Loader) Registry() *DecoderRegistry {
	return l.registry
}

// WithDecoder returns a LoaderContext that decodes with the named decoder
// whatever the file extension.
func (l *Loader) WithDecoder(decoderName string) *LoaderContext {
	return &LoaderContext{
		loader:      l,
		decoderName: decoderName,
	}
}

// Load reads and decodes the document at path.
func (l *Loader) Load(path string) (any, error) {
	decoder, err := l.registry.ForPath(path)
	if err != nil {
		return nil, err
	}
	return l.load(path, decoder)
}

// Load reads and decodes the document at path with the selected decoder.
func (lc *LoaderContext) Load(path string) (any, error) {
	decoder, err := lc.loader.registry.ByName(lc.decoderName)
	if err != nil {
		return nil, err
	}
	return lc.loader.load(path, decoder)
}

func (l *Loader) load(path string, decoder Decoder) (any, error) {
	log := l.logger.With("path", path, "decoder", decoder.Name())

	info, err := os.Stat(path)
	if err != nil {
		log.Error("failed to stat document", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	read := func() (any, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("failed to read document", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
		}
		log.Debug("decoding document", "bytes", len(data))
		value, err := decoder.Decode(data)
		if err != nil {
			log.Warn("failed to decode document", "error", err)
			return nil, fmt.Errorf("failed to decode %s with %s: %w", path, decoder.Name(), err)
		}
		return value, nil
	}

	if l.cache == nil {
		return read()
	}

	value, hit, err := l.cache.GetOrLoad(path, info, read)
	if hit {
		log.Debug("document cache hit")
	}
	return value, err
}

///////////////////////////////////////////////////////////////////////////////
// File parsing
///////////////////////////////////////////////////////////////////////////////

// DocumentSource loads a document by path. *Loader and *LoaderContext
// implement it.
type DocumentSource interface {
	Load(path string) (any, error)
}

// FileParser runs a Parser on documents loaded from disk.
type FileParser[T any] struct {
	source DocumentSource
	parser Parser[any, T]
}

// NewFileParser pairs p with a Loader or LoaderContext.
func NewFileParser[T any](source DocumentSource, p Parser[any, T]) *FileParser[T] {
	return &FileParser[T]{source: source, parser: p}
}

// Parse loads path and parses it without reporting. Load errors are
// returned as is; validation failures as *ParseError.
func (fp *FileParser[T]) Parse(path string) (T, error) {
	value, err := fp.source.Load(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return fp.parser.Parse(value)
}

// ParseWithResult loads path and parses it in reporting mode. A load error
// becomes a failure with expected name "document" and the quoted path as
// actual value.
func (fp *FileParser[T]) ParseWithResult(path string) *Outcome[T] {
	value, err := fp.source.Load(path)
	if err != nil {
		node := NewErrorNode(err.Error(), ExpectedDocument, quoteString(path))
		return newOutcome(Failure[T](node, Flags{IsReport: true}))
	}
	return fp.parser.ParseWithResult(value)
}

// ParseAsync loads and parses path on a new goroutine. The returned Future
// resolves with ctx.Err() if ctx is done before loading starts.
func (fp *FileParser[T]) ParseAsync(ctx context.Context, path string) *Future[T] {
	f := newFuture[T]()
	go func() {
		if err := ctx.Err(); err != nil {
			var zero T
			f.resolve(zero, err)
			return
		}
		value, err := fp.source.Load(path)
		if err != nil {
			var zero T
			f.resolve(zero, err)
			return
		}
		f.resolve(fp.parser.ParseWithResult(value).Except())
	}()
	return f
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _defaultLoader atomic.Pointer[Loader]

func init() {
	_defaultDecoders = []Decoder{
		NewJSONDecoder(),
		NewYAMLDecoder(),
	}

	l, err := NewLoader(LoaderOpts{UseCache: true})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default loader: %v", err))
	}
	_defaultLoader.Store(l)
}

// DefaultLoader returns the loader used by the package-level file functions.
func DefaultLoader() *Loader {
	return _defaultLoader.Load()
}

// SetDefaultLoader replaces the loader used by the package-level file
// functions.
func SetDefaultLoader(l *Loader) {
	_defaultLoader.Store(l)
}

// SetLogger replaces the default loader with one that logs to logger and
// otherwise shares its registry and cache.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	current := DefaultLoader()
	_defaultLoader.Store(&Loader{
		registry: current.registry,
		cache:    current.cache,
		logger:   logger,
	})
}

// RegisterDecoder registers a decoder with the default loader.
func RegisterDecoder(decoder Decoder) error {
	return DefaultLoader().registry.Register(decoder)
}

// LoadFile reads and decodes path with the default loader.
func LoadFile(path string) (any, error) {
	return DefaultLoader().Load(path)
}

// ParseFile loads path with the default loader and parses it without
// reporting.
func ParseFile[T any](path string, p Parser[any, T]) (T, error) {
	return NewFileParser(DefaultLoader(), p).Parse(path)
}

// ParseFileWithResult loads path with the default loader and parses it in
// reporting mode.
func ParseFileWithResult[T any](path string, p Parser[any, T]) *Outcome[T] {
	return NewFileParser(DefaultLoader(), p).ParseWithResult(path)
}

// ParseFileAsync loads and parses path with the default loader on a new
// goroutine.
func ParseFileAsync[T any](ctx context.Context, path string, p Parser[any, T]) *Future[T] {
	return NewFileParser(DefaultLoader(), p).ParseAsync(ctx, path)
}
