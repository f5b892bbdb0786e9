package rangeset

import (
	"log/slog"
	"math"
)

// DefaultMaxValue is the largest index accepted unless WithMaxValue is used.
// Every accepted index fits a Selection (32-bit Roaring bitmap).
const DefaultMaxValue = math.MaxInt32

// DefaultMaxValues is the largest number of integers Parse and the index list
// operations materialize unless WithMaxValues is used.
const DefaultMaxValues = 1 << 24

type options struct {
	maxValue         int
	maxValues        int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Converter.
type Option func(*options)

// WithMaxValue bounds the indices a range expression may name.
//
// Masks and lists are materialized up to the largest selected index, so
// services that accept range expressions from users should set this to the
// size of the indexed collection. Values <= 0 or above DefaultMaxValue are
// clamped to DefaultMaxValue.
func WithMaxValue(maxValue int) Option {
	return func(o *options) {
		if maxValue <= 0 || maxValue > DefaultMaxValue {
			maxValue = DefaultMaxValue
		}
		o.maxValue = maxValue
	}
}

// WithMaxValues bounds how many integers Parse may return and how many
// distinct indices a list operation may add. Expressions over the bound are
// rejected with ValueTooLargeError. Masks and selections are not affected.
// Values <= 0 select DefaultMaxValues.
func WithMaxValues(maxValues int) Option {
	return func(o *options) {
		if maxValues <= 0 {
			maxValues = DefaultMaxValues
		}
		o.maxValues = maxValues
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &rangeset.BasicMetricsCollector{}
//	c := rangeset.New(rangeset.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Parses: %d, errors: %d\n", stats.ParseCount, stats.ParseErrors)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := rangeset.NewJSONLogger(slog.LevelDebug)
//	c := rangeset.New(rangeset.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxValue:         DefaultMaxValue,
		maxValues:        DefaultMaxValues,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
