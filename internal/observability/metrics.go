package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	entryPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Subsystem: "persistence",
		Name:      "last_entry_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent tracker entry persisted to Postgres.",
	})
	streakRecomputeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Subsystem: "consumer",
		Name:      "last_streak_recompute_timestamp_seconds",
		Help:      "Unix timestamp of the most recent habit streak recomputation.",
	})
)

func init() {
	prometheus.MustRegister(entryPersistGauge, streakRecomputeGauge)
}

// RecordEntryPersisted updates the persistence watermark gauge.
func RecordEntryPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	entryPersistGauge.Set(float64(ts.Unix()))
}

// RecordStreakRecompute updates the streak recomputation watermark gauge.
func RecordStreakRecompute(ts time.Time) {
	if ts.IsZero() {
		return
	}
	streakRecomputeGauge.Set(float64(ts.Unix()))
}
