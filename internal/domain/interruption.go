package domain

import "time"

// InterruptionType names what broke the user's focus.
type InterruptionType string

const (
	InterruptionPhone       InterruptionType = "Phone"
	InterruptionSocialMedia InterruptionType = "Social Media"
	InterruptionNoise       InterruptionType = "Noise"
	InterruptionOther       InterruptionType = "Other"
)

// Valid reports whether the interruption type is an enumerated value.
func (t InterruptionType) Valid() bool {
	switch t {
	case InterruptionPhone, InterruptionSocialMedia, InterruptionNoise, InterruptionOther:
		return true
	}
	return false
}

// Interruption records a break in focus, optionally linked to the activity it
// interrupted. DurationMinutes, when present, is bounded to [1,480].
type Interruption struct {
	ID              string
	UserID          string
	ActivityID      *string
	Time            time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Type            InterruptionType
	Note            *string
	CreatedAt       time.Time
}
