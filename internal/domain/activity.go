// Package domain defines the entities and business workflows for the tracker.
package domain

import "time"

// ActivityCategory classifies how a block of time was spent.
type ActivityCategory string

const (
	CategoryStudy   ActivityCategory = "Study"
	CategoryCoding  ActivityCategory = "Coding"
	CategoryWork    ActivityCategory = "Work"
	CategoryReading ActivityCategory = "Reading"
	CategoryRest    ActivityCategory = "Rest"
	CategorySocial  ActivityCategory = "Social"
	CategoryOther   ActivityCategory = "Other"
)

// Valid reports whether the category is one of the enumerated values.
func (c ActivityCategory) Valid() bool {
	switch c {
	case CategoryStudy, CategoryCoding, CategoryWork, CategoryReading,
		CategoryRest, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// Focus reports whether the category counts as productive time for
// balance and consistency metrics.
func (c ActivityCategory) Focus() bool {
	switch c {
	case CategoryStudy, CategoryCoding, CategoryWork, CategoryReading:
		return true
	}
	return false
}

// EnergyCost grades how draining an activity was.
type EnergyCost string

const (
	EnergyCostLight  EnergyCost = "light"
	EnergyCostMedium EnergyCost = "medium"
	EnergyCostHeavy  EnergyCost = "heavy"
)

// Valid reports whether the energy cost is an enumerated value.
func (e EnergyCost) Valid() bool {
	switch e {
	case EnergyCostLight, EnergyCostMedium, EnergyCostHeavy:
		return true
	}
	return false
}

// WorkType separates deep, focused work from shallow reactive work.
type WorkType string

const (
	WorkTypeDeep    WorkType = "deep"
	WorkTypeShallow WorkType = "shallow"
	WorkTypeMixed   WorkType = "mixed"
	WorkTypeRest    WorkType = "rest"
)

// Valid reports whether the work type is an enumerated value.
func (w WorkType) Valid() bool {
	switch w {
	case WorkTypeDeep, WorkTypeShallow, WorkTypeMixed, WorkTypeRest:
		return true
	}
	return false
}

// Activity is a logged block of time. EndTime is strictly after StartTime and
// the block never exceeds 24 hours.
type Activity struct {
	ID               string
	UserID           string
	Category         ActivityCategory
	StartTime        time.Time
	EndTime          time.Time
	Note             *string
	EnergyCost       *EnergyCost
	WorkType         *WorkType
	PlannedStartTime *time.Time
	PlannedEndTime   *time.Time
	TaskID           *string
	CreatedAt        time.Time
}

// DurationMinutes returns the activity length in fractional minutes.
func (a Activity) DurationMinutes() float64 {
	return a.EndTime.Sub(a.StartTime).Minutes()
}

// IsDeepWork reports whether the activity was tagged as deep work.
func (a Activity) IsDeepWork() bool {
	return a.WorkType != nil && *a.WorkType == WorkTypeDeep
}
