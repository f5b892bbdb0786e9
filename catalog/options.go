package catalog

import (
	"github.com/hupe1980/rangeset"
	"github.com/hupe1980/rangeset/codec"
)

// Options configures a Catalog.
type Options struct {
	// Prefix is prepended to every blob name, e.g. "tenant-a/".
	Prefix string

	// Codec encodes stored selections. Default: codec.Default (zstd).
	Codec codec.Codec

	// MaxConcurrency bounds the store calls in flight, including the
	// fan-out of LoadAll. Default: 8. Negative means unlimited.
	MaxConcurrency int

	// WriteBytesPerSec throttles Save and Apply. 0 disables throttling.
	WriteBytesPerSec int64

	// Converter parses expressions passed to Apply. Default: rangeset.New().
	Converter *rangeset.Converter

	// Logger receives Debug records for saves and loads and Warn records for
	// failed bulk loads. Default: no-op.
	Logger *rangeset.Logger
}

// DefaultMaxConcurrency is the default for Options.MaxConcurrency.
const DefaultMaxConcurrency = 8

// DefaultOptions returns the default catalog options.
func DefaultOptions() Options {
	return Options{
		Codec:          codec.Default,
		MaxConcurrency: DefaultMaxConcurrency,
		Converter:      rangeset.New(),
		Logger:         rangeset.NoopLogger(),
	}
}

func (o *Options) fillDefaults() {
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	if o.MaxConcurrency == 0 {
		o.MaxConcurrency = DefaultMaxConcurrency
	}
	if o.Converter == nil {
		o.Converter = rangeset.New()
	}
	if o.Logger == nil {
		o.Logger = rangeset.NoopLogger()
	}
}
