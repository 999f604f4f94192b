package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/rezkam/daily/internal/domain"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumByAttr(t *testing.T, data metricdata.Aggregation, key string) map[string]int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", data)

	out := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key(key))
		out[v.AsString()] += dp.Value
	}
	return out
}

func TestStoreMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	p := &fakePersistence{}
	s, _ := newTestStore(t, p, WithMeterProvider(mp))
	ctx := context.Background()

	a := mustCreate(t, s, "uno")
	_, err := s.Create(ctx, domain.CreateTaskParams{Title: "dos", DueDate: "2025-02-01"})
	require.NoError(t, err)
	_, err = s.SetStatus(ctx, a.ID, domain.StatusCompleted)
	require.NoError(t, err)
	_, err = s.ExpireOverdue(ctx, time.Date(2025, 3, 1, 0, 0, 0, 0, madrid))
	require.NoError(t, err)

	p.saveErr = errors.New("disk full")
	require.NoError(t, s.Delete(ctx, "missing"))

	data := collect(t, reader)

	mutations := sumByAttr(t, data["daily.task.mutations"], "op")
	assert.Equal(t, int64(2), mutations[OpCreate])
	assert.Equal(t, int64(1), mutations[OpSetStatus])
	assert.Equal(t, int64(1), mutations[OpExpire])
	assert.Equal(t, int64(1), mutations[OpDelete])

	failures := sumByAttr(t, data["daily.persistence.failures"], "op")
	assert.Equal(t, map[string]int64{OpDelete: 1}, failures)

	expired, ok := data["daily.task.expired"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, expired.DataPoints, 1)
	assert.Equal(t, int64(1), expired.DataPoints[0].Value)

	gauge, ok := data["daily.task.count"].(metricdata.Gauge[int64])
	require.True(t, ok)
	counts := make(map[string]int64)
	for _, dp := range gauge.DataPoints {
		v, _ := dp.Attributes.Value("state")
		counts[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		string(domain.StatusPending):    0,
		string(domain.StatusInProgress): 0,
		string(domain.StatusCompleted):  1,
		string(domain.StatusExpired):    1,
	}, counts)
}
