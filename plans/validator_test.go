package plans

import (
	"strings"
	"testing"
	"time"

	"wayfare/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func basePlan() models.Plan {
	return models.Plan{
		Title:       "Summer trip",
		StartDate:   day("2024-06-01"),
		EndDate:     day("2024-06-05"),
		Destination: models.Destination{Name: "Lisbon"},
		Status:      models.PlanStatusPlanning,
	}
}

func TestValidatePlanDateRange(t *testing.T) {
	plan := basePlan()
	if err := ValidatePlan(&plan); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	plan.EndDate = plan.StartDate
	if err := ValidatePlan(&plan); err == nil {
		t.Fatal("end_date == start_date should be rejected")
	}

	plan.EndDate = day("2024-05-30")
	if err := ValidatePlan(&plan); err == nil {
		t.Fatal("end_date before start_date should be rejected")
	}
}

func TestValidatePlanActivityDates(t *testing.T) {
	cases := []struct {
		name string
		date string
		ok   bool
	}{
		{"inside range", "2024-06-03", true},
		{"on start date", "2024-06-01", true},
		{"on end date", "2024-06-05", true},
		{"before range", "2024-05-31", false},
		{"after range", "2024-06-06", false},
	}

	for _, c := range cases {
		plan := basePlan()
		plan.Activities = []models.Activity{{Name: "Museum visit", Date: day(c.date)}}
		err := ValidatePlan(&plan)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected rejection", c.name)
		}
	}
}

func TestValidatePlanErrorNamesActivityIndex(t *testing.T) {
	plan := basePlan()
	plan.Activities = []models.Activity{
		{Name: "OK", Date: day("2024-06-02")},
		{Name: "Bad", Date: day("2024-06-06")},
	}
	err := ValidatePlan(&plan)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "activity 1") {
		t.Fatalf("error should name the offending activity index, got: %v", err)
	}
}

func TestValidatePlanActivityTimes(t *testing.T) {
	cases := []struct {
		start, end string
		ok         bool
	}{
		{"09:00", "11:30", true},
		{"09:00", "09:00", false},
		{"14:00", "09:00", false},
		{"9am", "11am", false},
		{"", "", true}, // times are optional
	}

	for _, c := range cases {
		plan := basePlan()
		plan.Activities = []models.Activity{{
			Name: "Walk", Date: day("2024-06-02"),
			StartTime: c.start, EndTime: c.end,
		}}
		err := ValidatePlan(&plan)
		if c.ok && err != nil {
			t.Errorf("%s-%s: unexpected error: %v", c.start, c.end, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s-%s: expected rejection", c.start, c.end)
		}
	}
}

func TestValidatePlanStatus(t *testing.T) {
	for _, status := range models.PlanStatuses {
		plan := basePlan()
		plan.Status = status
		if err := ValidatePlan(&plan); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}

	plan := basePlan()
	plan.Status = "done"
	if err := ValidatePlan(&plan); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestSharePayloadRoundTrip(t *testing.T) {
	payload := SharePayload("plan123", "user456")
	if !VerifySharePayload(payload) {
		t.Fatal("freshly signed payload should verify")
	}
	if VerifySharePayload(payload + "x") {
		t.Fatal("tampered payload should not verify")
	}
	if VerifySharePayload("no-signature") {
		t.Fatal("malformed payload should not verify")
	}
}
