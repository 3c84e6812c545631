package analytics

import (
	"time"

	"example.com/routine/internal/domain"
)

const defaultInterruptionMinutes = 5

var interruptionTypeWeights = map[domain.InterruptionType]float64{
	domain.InterruptionPhone:       1.2,
	domain.InterruptionSocialMedia: 1.4,
	domain.InterruptionNoise:       1.0,
	domain.InterruptionOther:       1.1,
}

// InterruptionCost scores how damaging an interruption was:
// duration × type weight × context weight. Missing durations assume five
// minutes. Unknown types weigh 1.0, and interruptions that cut into an early
// focus block carry a 1.3 context multiplier.
func InterruptionCost(i domain.Interruption, isEarlyFocus bool) float64 {
	duration := float64(defaultInterruptionMinutes)
	if i.DurationMinutes != nil {
		duration = float64(*i.DurationMinutes)
	}

	typeWeight, ok := interruptionTypeWeights[i.Type]
	if !ok {
		typeWeight = 1.0
	}

	contextWeight := 1.0
	if isEarlyFocus {
		contextWeight = 1.3
	}

	return duration * typeWeight * contextWeight
}

// RecoveryTime reports the whole minutes between an interruption and the next
// focus block. ok is false when there is no next block or it does not start
// strictly after the interruption.
func RecoveryTime(interruptedAt time.Time, nextFocusAt *time.Time) (int, bool) {
	if nextFocusAt == nil || !nextFocusAt.After(interruptedAt) {
		return 0, false
	}
	return int(nextFocusAt.Sub(interruptedAt).Minutes()), true
}
