package rangeset

import (
	"sync/atomic"
	"time"
)

// Target names the representation an update operation writes to.
type Target string

const (
	// TargetList is an index list (*intvec.Vector).
	TargetList Target = "list"
	// TargetMask is a membership mask (*boolvec.Vector).
	TargetMask Target = "mask"
	// TargetSelection is a Roaring-backed *Selection.
	TargetSelection Target = "selection"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the metrics/prometheus package).
type MetricsCollector interface {
	// RecordParse is called once per parsed range expression.
	// values is the number of integers the expression expanded to (0 on error).
	RecordParse(values int, duration time.Duration, err error)

	// RecordUpdate is called after each init/update operation on a target.
	RecordUpdate(target Target, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordUpdate(Target, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount       atomic.Int64
	ParseErrors      atomic.Int64
	ParsedValues     atomic.Int64
	ParseTotalNanos  atomic.Int64
	ListUpdates      atomic.Int64
	MaskUpdates      atomic.Int64
	SelectionUpdates atomic.Int64
	UpdateErrors     atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(values int, duration time.Duration, err error) {
	b.ParseCount.Add(1)
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	b.ParsedValues.Add(int64(values))
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(target Target, _ time.Duration, err error) {
	switch target {
	case TargetList:
		b.ListUpdates.Add(1)
	case TargetMask:
		b.MaskUpdates.Add(1)
	case TargetSelection:
		b.SelectionUpdates.Add(1)
	}
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:       b.ParseCount.Load(),
		ParseErrors:      b.ParseErrors.Load(),
		ParsedValues:     b.ParsedValues.Load(),
		ParseAvgNanos:    b.getAvgParseNanos(),
		ListUpdates:      b.ListUpdates.Load(),
		MaskUpdates:      b.MaskUpdates.Load(),
		SelectionUpdates: b.SelectionUpdates.Load(),
		UpdateErrors:     b.UpdateErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgParseNanos() int64 {
	count := b.ParseCount.Load()
	if count == 0 {
		return 0
	}
	return b.ParseTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount       int64
	ParseErrors      int64
	ParsedValues     int64
	ParseAvgNanos    int64
	ListUpdates      int64
	MaskUpdates      int64
	SelectionUpdates int64
	UpdateErrors     int64
}
