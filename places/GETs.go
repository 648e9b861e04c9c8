package places

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/rdx"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/places
func GetPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Serve the unfiltered first page from cache
	if r.URL.RawQuery == "" {
		if cached, _ := rdx.RdxGet(placesCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{"active": true}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if city := r.URL.Query().Get("city"); city != "" {
		filter["city"] = city
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "created_at", Value: -1}}, map[string]bson.D{
		"rating": {{Key: "averageRating", Value: -1}},
		"views":  {{Key: "views", Value: -1}},
	})
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	places, err := utils.FindAndDecode[models.Place](ctx, db.PlacesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	if r.URL.RawQuery == "" {
		if data, err := json.Marshal(places); err == nil {
			_ = rdx.RdxSetWithTTL(placesCacheKey, string(data), 5*time.Minute)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, places)
}

// GET /api/places/:placeid
func GetPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	placeID := ps.ByName("placeid")

	var place models.Place
	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": placeID}).Decode(&place)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	rdx.IncrementPlaceViews(placeID)

	utils.SendResponse(w, http.StatusOK, place, "", nil)
}

// GET /api/places/mine — places owned by the requesting account.
func GetMyPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	places, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, bson.M{"createdBy": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	utils.SendResponse(w, http.StatusOK, places, "", nil)
}

// GET /api/places/nearby?lat=..&lon=..&radius=..
// Radius is meters; the lookup rides on the 2dsphere index and the reported
// distance is recomputed with haversine for the response.
func GetNearbyPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lat, okLat := utils.ParseFloatQuery(r, "lat")
	lon, okLon := utils.ParseFloatQuery(r, "lon")
	if !okLat || !okLon {
		utils.RespondWithError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	radius, ok := utils.ParseFloatQuery(r, "radius")
	if !ok || radius <= 0 {
		radius = 5000
	}

	filter := bson.M{
		"active": true,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lon, lat},
				},
				"$maxDistance": radius,
			},
		},
	}

	_, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetLimit(limit)

	places, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch nearby places")
		return
	}

	for i := range places {
		coords := places[i].Location.Coordinates
		if len(coords) == 2 {
			places[i].Distance = HaversineMeters(lat, lon, coords[1], coords[0])
		}
	}

	utils.SendResponse(w, http.StatusOK, places, "", nil)
}
