package result

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/kddgo/blobstore"
	"github.com/hupe1980/kddgo/cache"
	"github.com/hupe1980/kddgo/codec"
	"github.com/hupe1980/kddgo/resource"
)

// ErrNotFound is returned when a handle does not resolve to a stored result.
var ErrNotFound = blobstore.ErrNotFound

type options struct {
	codec       codec.Codec
	compression Compression
	namer       Namer
	catalog     Catalog
	cache       cache.Cache
	rc          *resource.Controller
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithCodec sets the codec used for new results. Default: codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the compression of new results. Default: CompressionZstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithNamer sets how new results are named. Default: UUIDNamer.
func WithNamer(n Namer) Option {
	return func(o *options) {
		o.namer = n
	}
}

// WithCatalog records every publish in c.
func WithCatalog(c Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithCache keeps published and resolved blobs in c. Results are immutable,
// so cached blobs never go stale; Delete invalidates them.
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithResourceController throttles reads and writes with rc's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger configures structured logging. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Store publishes results to a blobstore. It is safe for concurrent use if
// the blobstore, namer and catalog are.
type Store struct {
	blobs       blobstore.BlobStore
	codec       codec.Codec
	compression Compression
	namer       Namer
	catalog     Catalog
	cache       cache.Cache
	rc          *resource.Controller
	logger      *slog.Logger
}

// New returns a Store writing to blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Store {
	opts := options{
		codec:       codec.Default,
		compression: CompressionZstd,
		namer:       UUIDNamer{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	return &Store{
		blobs:       blobs,
		codec:       opts.codec,
		compression: opts.compression,
		namer:       opts.namer,
		catalog:     opts.catalog,
		cache:       opts.cache,
		rc:          opts.rc,
		logger:      opts.logger,
	}
}

// Publish encodes v, stores it under a new name and returns its handle.
func (s *Store) Publish(ctx context.Context, kind Kind, v any) (Handle, error) {
	if kind == "" || strings.Contains(string(kind), "/") {
		return Handle{}, fmt.Errorf("%w: kind %q", ErrInvalidHandle, kind)
	}
	name, err := s.namer.Name(ctx, kind)
	if err != nil {
		return Handle{}, err
	}
	if name == "" || strings.Contains(name, "/") {
		return Handle{}, fmt.Errorf("%w: name %q", ErrInvalidHandle, name)
	}
	h := Handle{Kind: kind, Name: name}

	raw, err := s.codec.Marshal(v)
	if err != nil {
		return Handle{}, fmt.Errorf("result: encode %s with %s: %w", kind, s.codec.Name(), err)
	}
	payload, used, err := compress(raw, s.compression)
	if err != nil {
		return Handle{}, err
	}
	blob, err := frame{compression: used, codec: s.codec.Name(), rawSize: len(raw), payload: payload}.marshal()
	if err != nil {
		return Handle{}, err
	}

	var buf bytes.Buffer
	if _, err := resource.NewRateLimitedWriter(ctx, &buf, s.rc).Write(blob); err != nil {
		return Handle{}, err
	}
	if err := s.blobs.Put(ctx, h.key(), buf.Bytes()); err != nil {
		s.logger.Error("publish failed", "handle", h.String(), "error", err)
		return Handle{}, fmt.Errorf("result: store %s: %w", h, err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, h.key(), blob)
	}

	if s.catalog != nil {
		e := Entry{Handle: h, Size: int64(len(blob)), Compression: used, Codec: s.codec.Name(), Published: time.Now().UTC()}
		if err := s.catalog.Record(ctx, e); err != nil {
			s.logger.Error("catalog record failed", "handle", h.String(), "error", err)
			return Handle{}, fmt.Errorf("result: catalog %s: %w", h, err)
		}
	}

	s.logger.Debug("result published",
		"handle", h.String(),
		"bytes", len(blob),
		"raw_bytes", len(raw),
		"compression", used.String(),
	)
	return h, nil
}

// Resolve decodes the result addressed by h into v, using the codec and
// compression recorded in the blob.
func (s *Store) Resolve(ctx context.Context, h Handle, v any) error {
	data, cached := s.cached(ctx, h)
	if !cached {
		var err error
		if data, err = s.read(ctx, h); err != nil {
			return err
		}
	}

	f, err := unmarshalFrame(data)
	if err != nil {
		return err
	}
	if !cached && s.cache != nil {
		s.cache.Set(ctx, h.key(), data)
	}
	c, ok := s.codecFor(f.codec)
	if !ok {
		return fmt.Errorf("%w: unknown codec %q", ErrCorrupt, f.codec)
	}
	raw, err := decompress(f.payload, f.compression, f.rawSize)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("result: decode %s with %s: %w", h, c.Name(), err)
	}
	return nil
}

// codecFor prefers the configured codec, so stores using a custom codec can
// read back what they publish.
func (s *Store) codecFor(name string) (codec.Codec, bool) {
	if name == s.codec.Name() {
		return s.codec, true
	}
	return codec.ByName(name)
}

func (s *Store) cached(ctx context.Context, h Handle) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, h.key())
}

func (s *Store) read(ctx context.Context, h Handle) ([]byte, error) {
	b, err := s.blobs.Open(ctx, h.key())
	if err != nil {
		return nil, fmt.Errorf("result: resolve %s: %w", h, err)
	}
	defer b.Close()

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, b), s.rc))
	if err != nil {
		return nil, fmt.Errorf("result: read %s: %w", h, err)
	}
	return data, nil
}

// Delete removes the result addressed by h.
func (s *Store) Delete(ctx context.Context, h Handle) error {
	if s.cache != nil {
		s.cache.Invalidate(h.key())
	}
	if err := s.blobs.Delete(ctx, h.key()); err != nil {
		return fmt.Errorf("result: delete %s: %w", h, err)
	}
	s.logger.Debug("result deleted", "handle", h.String())
	return nil
}

// List returns the handles of every stored result of kind, sorted by name.
func (s *Store) List(ctx context.Context, kind Kind) ([]Handle, error) {
	prefix := string(kind) + "/"
	names, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	hs := make([]Handle, 0, len(names))
	for _, n := range names {
		name := strings.TrimPrefix(n, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		hs = append(hs, Handle{Kind: kind, Name: name})
	}
	return hs, nil
}

// Latest resolves the most recent catalog entry of kind into v.
func (s *Store) Latest(ctx context.Context, kind Kind, v any) (Handle, error) {
	if s.catalog == nil {
		return Handle{}, fmt.Errorf("result: latest %s: no catalog configured", kind)
	}
	e, err := s.catalog.Latest(ctx, kind)
	if err != nil {
		return Handle{}, err
	}
	return e.Handle, s.Resolve(ctx, e.Handle, v)
}
