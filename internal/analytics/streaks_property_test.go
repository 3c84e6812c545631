package analytics

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"example.com/routine/internal/domain"
)

var propToday = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func genDayTimes(t *rapid.T) []time.Time {
	n := rapid.IntRange(0, 40).Draw(t, "nTimes")
	times := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		offset := rapid.IntRange(-60, 0).Draw(t, "dayOffset")
		hour := rapid.IntRange(0, 23).Draw(t, "hour")
		times = append(times, propToday.AddDate(0, 0, offset).Truncate(24*time.Hour).Add(time.Duration(hour)*time.Hour))
	}
	return times
}

func TestStreaksProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := genDayTimes(t)
		summary := Streaks(times, propToday)

		if summary.Current > summary.Longest {
			t.Fatalf("current streak %d exceeds longest %d", summary.Current, summary.Longest)
		}
		if summary.Longest > summary.DaysWithActivity {
			t.Fatalf("longest streak %d exceeds days with activity %d", summary.Longest, summary.DaysWithActivity)
		}

		distinct := make(map[time.Time]struct{})
		hasToday := false
		for _, ts := range times {
			day := DayOf(ts)
			distinct[day] = struct{}{}
			if day.Equal(DayOf(propToday)) {
				hasToday = true
			}
		}
		if summary.DaysWithActivity != len(distinct) {
			t.Fatalf("days with activity = %d, want %d distinct days", summary.DaysWithActivity, len(distinct))
		}
		if hasToday != (summary.Current > 0) {
			t.Fatalf("current streak %d disagrees with today presence %v", summary.Current, hasToday)
		}

		if len(times) > 0 {
			doubled := append(append([]time.Time(nil), times...), times[0])
			if Streaks(doubled, propToday) != summary {
				t.Fatal("duplicate timestamps changed the summary")
			}
		}
	})
}

func TestInterruptionCostProperties(t *testing.T) {
	types := []domain.InterruptionType{
		domain.InterruptionPhone,
		domain.InterruptionSocialMedia,
		domain.InterruptionNoise,
		domain.InterruptionOther,
	}

	rapid.Check(t, func(t *rapid.T) {
		i := domain.Interruption{
			Type: types[rapid.IntRange(0, len(types)-1).Draw(t, "typeIdx")],
			Time: propToday,
		}
		if rapid.Bool().Draw(t, "hasDuration") {
			minutes := rapid.IntRange(1, 240).Draw(t, "minutes")
			i.DurationMinutes = &minutes
		}

		plain := InterruptionCost(i, false)
		early := InterruptionCost(i, true)

		if plain <= 0 {
			t.Fatalf("cost must be positive, got %f", plain)
		}
		if early <= plain {
			t.Fatalf("early-focus cost %f must exceed plain cost %f", early, plain)
		}

		if i.DurationMinutes == nil {
			withDefault := i
			minutes := 5
			withDefault.DurationMinutes = &minutes
			if InterruptionCost(withDefault, false) != plain {
				t.Fatal("missing duration must cost the same as an explicit five minutes")
			}
		}
	})
}
