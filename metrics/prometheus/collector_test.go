package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/rangeset"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_WithConverter(t *testing.T) {
	reg := prom.NewRegistry()
	mc, err := NewCollector(reg)
	require.NoError(t, err)

	conv := rangeset.New(rangeset.WithMetricsCollector(mc))

	_, err = conv.AllocList("1-3, 7")
	require.NoError(t, err)
	_, err = conv.AllocMask("5-")
	require.Error(t, err)
	_, err = conv.AllocSelection("9-4")
	require.Error(t, err)
	_, err = conv.AllocSelection("0-9")
	require.NoError(t, err)

	assert.Equal(t, float64(14), testutil.ToFloat64(mc.parsedValues))
	assert.Equal(t, float64(1), testutil.ToFloat64(mc.parseErrors.WithLabelValues("TruncatedRangeError")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mc.parseErrors.WithLabelValues("InvalidRangeError")))

	// parse, list, mask and selection series, split by status.
	assert.Equal(t, 6, testutil.CollectAndCount(mc.opLatency))
}

func TestCollector_RecordUpdate(t *testing.T) {
	mc := MustNewCollector(prom.NewRegistry())

	mc.RecordUpdate(rangeset.TargetMask, time.Millisecond, nil)
	mc.RecordUpdate(rangeset.TargetMask, time.Millisecond, nil)
	mc.RecordUpdate(rangeset.TargetList, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(mc.opLatency))
}

func TestCollector_OtherErrorKind(t *testing.T) {
	mc := MustNewCollector(prom.NewRegistry())

	mc.RecordParse(0, time.Microsecond, errors.New("boom"))
	assert.Equal(t, float64(1), testutil.ToFloat64(mc.parseErrors.WithLabelValues("other")))
}

func TestCollector_Namespace(t *testing.T) {
	reg := prom.NewRegistry()
	mc := MustNewCollector(reg, func(c *Config) { c.Namespace = "app" })
	mc.RecordParse(3, time.Microsecond, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "app_parsed_values_total")
	assert.Contains(t, names, "app_operation_latency_seconds")
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prom.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	require.Error(t, err)
	assert.Panics(t, func() { MustNewCollector(reg) })
}
