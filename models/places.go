package models

import "time"

type Place struct {
	PlaceID     string    `json:"placeid" bson:"placeid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
	Country     string    `json:"country,omitempty" bson:"country,omitempty"`
	Location    GeoPoint  `json:"location" bson:"location"`
	Features    []string  `json:"features,omitempty" bson:"features,omitempty"`
	PriceTier   int       `json:"price_tier,omitempty" bson:"price_tier,omitempty"`
	Banner      string    `json:"banner,omitempty" bson:"banner,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	Approved    bool      `json:"approved" bson:"approved"`
	Active      bool      `json:"active" bson:"active"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Views       int       `json:"views,omitempty" bson:"views,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`

	// Maintained by the rating aggregator only; never taken from user input.
	AverageRating   float64 `json:"averageRating" bson:"averageRating"`
	RatingsQuantity int     `json:"ratingsQuantity" bson:"ratingsQuantity"`

	// Populated on nearby queries, not stored.
	Distance float64 `json:"distance,omitempty" bson:"-"`
}

// GeoPoint is a GeoJSON point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

const (
	CategoryTouristPlace = "tourist_place"
	CategoryShop         = "shop"
	CategoryHotel        = "hotel"
	CategoryRestaurant   = "restaurant"
	CategoryOther        = "other"
)

var PlaceCategories = []string{
	CategoryTouristPlace,
	CategoryShop,
	CategoryHotel,
	CategoryRestaurant,
	CategoryOther,
}
