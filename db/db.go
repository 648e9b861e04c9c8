package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	PlacesCollection   *mongo.Collection
	ReviewsCollection  *mongo.Collection
	PlansCollection    *mongo.Collection
	UserDataCollection *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("wayfaredb")
	UserCollection = database.Collection("users")
	PlacesCollection = database.Collection("places")
	ReviewsCollection = database.Collection("reviews")
	PlansCollection = database.Collection("plans")
	UserDataCollection = database.Collection("userdata")

	EnsureIndexes()
}

// EnsureIndexes creates the indexes the handlers rely on: the
// one-review-per-user-per-place uniqueness constraint and the
// geospatial index behind the nearby-places query.
func EnsureIndexes() {
	_, err := ReviewsCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "placeid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("reviews index: %v", err)
	}

	_, err = PlacesCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		log.Printf("places geo index: %v", err)
	}
}
