// Package prometheus exports rangeset metrics to Prometheus.
//
//	reg := prom.NewRegistry()
//	mc, err := prometheus.NewCollector(reg)
//	conv := rangeset.New(rangeset.WithMetricsCollector(mc))
package prometheus

import (
	"errors"
	"time"

	"github.com/hupe1980/rangeset"
	prom "github.com/prometheus/client_golang/prometheus"
)

const opParse = "parse"

// Collector implements rangeset.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency    *prom.HistogramVec
	parsedValues prom.Counter
	parseErrors  *prom.CounterVec
}

var _ rangeset.MetricsCollector = (*Collector)(nil)

// Config configures metric names.
type Config struct {
	// Namespace prefixes every metric name. Default: "rangeset".
	Namespace string
	// Buckets are the latency histogram buckets. Default: prom.DefBuckets.
	Buckets []float64
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prom.Registerer, optFns ...func(*Config)) (*Collector, error) {
	cfg := Config{
		Namespace: "rangeset",
		Buckets:   prom.DefBuckets,
	}
	for _, fn := range optFns {
		fn(&cfg)
	}

	c := &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of range parsing and container updates",
			Buckets:   cfg.Buckets,
		}, []string{"op", "status"}),
		parsedValues: prom.NewCounter(prom.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "parsed_values_total",
			Help:      "Total integers produced by accepted range expressions",
		}),
		parseErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "parse_errors_total",
			Help:      "Rejected range expressions by error kind",
		}, []string{"kind"}),
	}

	for _, m := range []prom.Collector{c.opLatency, c.parsedValues, c.parseErrors} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration errors.
func MustNewCollector(reg prom.Registerer, optFns ...func(*Config)) *Collector {
	c, err := NewCollector(reg, optFns...)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordParse implements rangeset.MetricsCollector.
func (c *Collector) RecordParse(values int, d time.Duration, err error) {
	c.opLatency.WithLabelValues(opParse, status(err)).Observe(d.Seconds())
	if err != nil {
		c.parseErrors.WithLabelValues(errorKind(err)).Inc()
		return
	}
	c.parsedValues.Add(float64(values))
}

// RecordUpdate implements rangeset.MetricsCollector.
func (c *Collector) RecordUpdate(target rangeset.Target, d time.Duration, err error) {
	c.opLatency.WithLabelValues(string(target), status(err)).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func errorKind(err error) string {
	var perr *rangeset.ParseError
	if errors.As(err, &perr) {
		return perr.Kind.String()
	}
	return "other"
}
