package domain

import "time"

// Mood is the optional emotional state recorded alongside an energy log.
type Mood string

const (
	MoodExcited  Mood = "excited"
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodAnxious  Mood = "anxious"
	MoodCalm     Mood = "calm"
	MoodFocused  Mood = "focused"
	MoodOther    Mood = "other"
)

// Valid reports whether the mood is an enumerated value.
func (m Mood) Valid() bool {
	switch m {
	case MoodExcited, MoodHappy, MoodNeutral, MoodTired, MoodStressed,
		MoodAnxious, MoodCalm, MoodFocused, MoodOther:
		return true
	}
	return false
}

// EnergyLog is a user's daily energy, stress, mood, and sleep snapshot.
// Exactly one log exists per user per date; writes upsert on that key.
// Energy and stress levels are 1 (very low) to 5 (very high).
type EnergyLog struct {
	ID          string
	UserID      string
	Date        Date
	EnergyLevel int
	StressLevel int
	Mood        *Mood
	SleepHours  *float64
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
