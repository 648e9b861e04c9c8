package plans

import (
	"testing"

	"wayfare/models"
)

func storedPlan() models.Plan {
	p := basePlan()
	p.PlanID = "plan123"
	p.UserID = "user123"
	p.Description = "Five days around Alfama"
	p.Budget = models.Budget{Amount: 900, Currency: "EUR"}
	p.Tags = []string{"food", "walking"}
	p.Activities = []models.Activity{{
		Name:      "Castle visit",
		Date:      day("2024-06-02"),
		StartTime: "10:00",
		EndTime:   "12:00",
	}}
	return p
}

func TestFillUnsetFieldsStatusOnlyUpdate(t *testing.T) {
	existing := storedPlan()
	updated := models.Plan{Status: models.PlanStatusCompleted}

	fillUnsetFields(&updated, existing)

	if updated.Status != models.PlanStatusCompleted {
		t.Fatalf("status = %q, want %q", updated.Status, models.PlanStatusCompleted)
	}
	if updated.PlanID != existing.PlanID || updated.UserID != existing.UserID {
		t.Fatal("identity fields must come from the stored plan")
	}
	if updated.Title != existing.Title {
		t.Errorf("title = %q, want %q", updated.Title, existing.Title)
	}
	if updated.Description != existing.Description {
		t.Errorf("description = %q, want %q", updated.Description, existing.Description)
	}
	if updated.Budget != existing.Budget {
		t.Errorf("budget = %+v, want %+v", updated.Budget, existing.Budget)
	}
	if len(updated.Tags) != len(existing.Tags) {
		t.Errorf("tags = %v, want %v", updated.Tags, existing.Tags)
	}
	if len(updated.Activities) != 1 {
		t.Errorf("activities = %v, want the stored activity", updated.Activities)
	}
	if !updated.StartDate.Equal(existing.StartDate) || !updated.EndDate.Equal(existing.EndDate) {
		t.Error("date range must come from the stored plan")
	}
}

func TestFillUnsetFieldsKeepsProvidedValues(t *testing.T) {
	existing := storedPlan()
	updated := models.Plan{
		Title:       "Autumn trip",
		Description: "Rescheduled",
		Budget:      models.Budget{Amount: 400, Currency: "EUR"},
		Tags:        []string{"museums"},
	}

	fillUnsetFields(&updated, existing)

	if updated.Title != "Autumn trip" {
		t.Errorf("title = %q, provided value must win", updated.Title)
	}
	if updated.Description != "Rescheduled" {
		t.Errorf("description = %q, provided value must win", updated.Description)
	}
	if updated.Budget.Amount != 400 {
		t.Errorf("budget amount = %v, provided value must win", updated.Budget.Amount)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "museums" {
		t.Errorf("tags = %v, provided value must win", updated.Tags)
	}
	if updated.Status != existing.Status {
		t.Errorf("status = %q, want backfilled %q", updated.Status, existing.Status)
	}
}
