package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/routine/internal/domain"
)

func interruptionOfType(typ domain.InterruptionType, minutes int) domain.Interruption {
	return domain.Interruption{
		Time:            day(2026, time.May, 4).Add(9 * time.Hour),
		Type:            typ,
		DurationMinutes: &minutes,
	}
}

func TestInterruptionCostWeights(t *testing.T) {
	cost := InterruptionCost(interruptionOfType(domain.InterruptionSocialMedia, 15), true)
	require.InDelta(t, 15*1.4*1.3, cost, 1e-9)
}

func TestInterruptionCostTypeOrdering(t *testing.T) {
	phone := InterruptionCost(interruptionOfType(domain.InterruptionPhone, 10), false)
	social := InterruptionCost(interruptionOfType(domain.InterruptionSocialMedia, 10), false)
	noise := InterruptionCost(interruptionOfType(domain.InterruptionNoise, 10), false)

	require.Greater(t, social, phone)
	require.Greater(t, phone, noise)
}

func TestInterruptionCostDefaults(t *testing.T) {
	unknown := domain.Interruption{
		Time: day(2026, time.May, 4),
		Type: domain.InterruptionType("Doorbell"),
	}

	cost := InterruptionCost(unknown, false)
	require.Equal(t, 5.0, cost, "missing duration defaults to five minutes at weight 1.0")
}

func TestRecoveryTime(t *testing.T) {
	interrupted := day(2026, time.May, 4).Add(10 * time.Hour)
	next := interrupted.Add(30 * time.Minute)

	minutes, ok := RecoveryTime(interrupted, &next)
	require.True(t, ok)
	require.Equal(t, 30, minutes)
}

func TestRecoveryTimeNoNextFocus(t *testing.T) {
	interrupted := day(2026, time.May, 4).Add(23 * time.Hour)

	_, ok := RecoveryTime(interrupted, nil)
	require.False(t, ok)
}

func TestRecoveryTimeNextFocusNotAfter(t *testing.T) {
	interrupted := day(2026, time.May, 4).Add(10 * time.Hour)
	before := interrupted.Add(-10 * time.Minute)

	_, ok := RecoveryTime(interrupted, &before)
	require.False(t, ok)

	_, ok = RecoveryTime(interrupted, &interrupted)
	require.False(t, ok)
}
