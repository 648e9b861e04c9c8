package plans

import (
	"fmt"
	"regexp"
	"time"

	"wayfare/models"
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidatePlan checks the temporal invariants on a plan: the date range,
// each activity's date against that range (day granularity, boundary days
// allowed), and each activity's start/end times. Activities may overlap
// each other; that is deliberate.
func ValidatePlan(plan *models.Plan) error {
	if plan.Title == "" {
		return fmt.Errorf("title is required")
	}
	if plan.Destination.Name == "" {
		return fmt.Errorf("destination name is required")
	}
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if !plan.EndDate.After(plan.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	if plan.Status != "" && !validStatus(plan.Status) {
		return fmt.Errorf("unknown status %q", plan.Status)
	}

	start := truncateToDay(plan.StartDate)
	end := truncateToDay(plan.EndDate)

	for i, activity := range plan.Activities {
		if activity.Name == "" {
			return fmt.Errorf("activity %d: name is required", i)
		}
		day := truncateToDay(activity.Date)
		if day.Before(start) || day.After(end) {
			return fmt.Errorf("activity %d: date %s is outside the plan's date range", i, activity.Date.Format("2006-01-02"))
		}
		if activity.StartTime != "" || activity.EndTime != "" {
			if !timeOfDayRe.MatchString(activity.StartTime) || !timeOfDayRe.MatchString(activity.EndTime) {
				return fmt.Errorf("activity %d: times must be in HH:MM format", i)
			}
			// "HH:MM" compares correctly as a string
			if activity.EndTime <= activity.StartTime {
				return fmt.Errorf("activity %d: end_time must be after start_time", i)
			}
		}
	}

	return nil
}

func validStatus(status string) bool {
	for _, s := range models.PlanStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
