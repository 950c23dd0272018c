package domain

import "time"

// DurationUnit qualifies a plan's duration value.
type DurationUnit string

const (
	DurationDay   DurationUnit = "DAY"
	DurationWeek  DurationUnit = "WEEK"
	DurationMonth DurationUnit = "MONTH"
	DurationYear  DurationUnit = "YEAR"
)

// ValidDurationUnit reports whether the value is a known unit.
func ValidDurationUnit(u DurationUnit) bool {
	switch u {
	case DurationDay, DurationWeek, DurationMonth, DurationYear:
		return true
	}
	return false
}

// Plan is a subscription offering. Serial orders active plans for display; it
// is meaningless among inactive plans. A trial plan must reference a non-trial
// successor plan.
type Plan struct {
	ID              string
	Name            string
	Slug            string
	Description     string
	DurationValue   int
	DurationUnit    DurationUnit
	Price           float64
	Features        []string
	IsTrial         bool
	PostTrialPlanID *string
	IsActive        bool
	Serial          int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
