package observability

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := g.Write(metric); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return metric.GetGauge().GetValue()
}

func TestRecordEntryPersisted(t *testing.T) {
	ts := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	RecordEntryPersisted(ts)

	if got := gaugeValue(t, entryPersistGauge); got != float64(ts.Unix()) {
		t.Fatalf("gauge = %f, want %d", got, ts.Unix())
	}

	RecordEntryPersisted(time.Time{})
	if got := gaugeValue(t, entryPersistGauge); got != float64(ts.Unix()) {
		t.Fatalf("zero timestamp must not move the gauge, got %f", got)
	}
}

func TestRecordStreakRecompute(t *testing.T) {
	ts := time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC)
	RecordStreakRecompute(ts)

	if got := gaugeValue(t, streakRecomputeGauge); got != float64(ts.Unix()) {
		t.Fatalf("gauge = %f, want %d", got, ts.Unix())
	}
}
