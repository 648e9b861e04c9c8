package models

import "time"

type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	UserID    string    `json:"userid" bson:"userid"`
	PlaceID   string    `json:"placeid" bson:"placeid"`
	PlanID    string    `json:"planid,omitempty" bson:"planid,omitempty"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"review" bson:"comment"`
	Images    []string  `json:"images,omitempty" bson:"images,omitempty"`
	Verified  bool      `json:"verified" bson:"verified"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	// Set on reads when the referenced place no longer exists.
	Dangling bool `json:"dangling,omitempty" bson:"-"`
}

// RatingSummary is what the aggregator writes back onto a place.
type RatingSummary struct {
	AverageRating   float64 `json:"averageRating" bson:"averageRating"`
	RatingsQuantity int     `json:"ratingsQuantity" bson:"ratingsQuantity"`
}

const MaxReviewLength = 1000
