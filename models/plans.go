package models

import "time"

// Plan is a user's itinerary over a date range with embedded activities.
type Plan struct {
	PlanID      string      `json:"planid" bson:"planid"`
	UserID      string      `json:"user_id" bson:"user_id"`
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description" bson:"description"`
	StartDate   time.Time   `json:"start_date" bson:"start_date"`
	EndDate     time.Time   `json:"end_date" bson:"end_date"`
	Destination Destination `json:"destination" bson:"destination"`
	Activities  []Activity  `json:"activities" bson:"activities"`
	Status      string      `json:"status" bson:"status"`
	Budget      Budget      `json:"budget,omitempty" bson:"budget,omitempty"`
	Tags        []string    `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

type Destination struct {
	Name     string    `json:"name" bson:"name"`
	Location *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
}

// Activity is embedded in a plan, not a separate collection.
type Activity struct {
	Name      string    `json:"name" bson:"name"`
	Date      time.Time `json:"date" bson:"date"`
	StartTime string    `json:"start_time" bson:"start_time"`
	EndTime   string    `json:"end_time" bson:"end_time"`
	PlaceID   string    `json:"placeid,omitempty" bson:"placeid,omitempty"`
	Location  *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Budget struct {
	Amount   float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`
	Spent    float64 `json:"spent,omitempty" bson:"spent,omitempty"`
}

const (
	PlanStatusPlanning   = "planning"
	PlanStatusInProgress = "in_progress"
	PlanStatusCompleted  = "completed"
	PlanStatusCancelled  = "cancelled"
)

var PlanStatuses = []string{
	PlanStatusPlanning,
	PlanStatusInProgress,
	PlanStatusCompleted,
	PlanStatusCancelled,
}
