package places

import (
	"encoding/json"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/rdx"
	"wayfare/userdata"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const placesCacheKey = "places"

type placeInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Features    []string `json:"features"`
	PriceTier   int      `json:"price_tier"`
	Tags        string   `json:"tags"`
}

func (in *placeInput) validate() (string, bool) {
	if in.Name == "" || in.Address == "" {
		return "Name and address are required", false
	}
	if !utils.Contains(models.PlaceCategories, in.Category) {
		return "Unknown category", false
	}
	if in.Longitude == nil || in.Latitude == nil {
		return "Longitude and latitude are required", false
	}
	if *in.Longitude < -180 || *in.Longitude > 180 || *in.Latitude < -90 || *in.Latitude > 90 {
		return "Coordinates out of range", false
	}
	return "", true
}

// POST /api/places — owner/admin only.
func CreatePlace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input placeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place data")
		return
	}
	if msg, ok := input.validate(); !ok {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	place := models.Place{
		PlaceID:     utils.GenerateRandomString(14),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
		Location:    models.NewGeoPoint(*input.Longitude, *input.Latitude),
		Features:    input.Features,
		PriceTier:   input.PriceTier,
		Tags:        utils.SplitTags(input.Tags),
		CreatedBy:   userID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.PlacesCollection.InsertOne(r.Context(), place); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create place")
		return
	}

	invalidateCache()
	userdata.SetUserData("place", place.PlaceID, userID, "", "")
	go mq.Emit(r.Context(), "place-created", models.Index{
		EntityType: "place", EntityId: place.PlaceID, Method: "POST",
	})

	utils.SendResponse(w, http.StatusCreated, place, "Place created", nil)
}

// PUT /api/places/:placeid — only the owning account (or admin) may edit;
// rating fields are never taken from the request.
func EditPlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	placeID := ps.ByName("placeid")

	place, ok := loadOwnedPlace(w, r, placeID, userID)
	if !ok {
		return
	}

	var input struct {
		placeInput
		Active   *bool `json:"active"`
		Approved *bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place data")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Category != "" {
		if !utils.Contains(models.PlaceCategories, input.Category) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		set["category"] = input.Category
	}
	if input.Address != "" {
		set["address"] = input.Address
	}
	if input.City != "" {
		set["city"] = input.City
	}
	if input.Country != "" {
		set["country"] = input.Country
	}
	if input.Longitude != nil && input.Latitude != nil {
		if *input.Longitude < -180 || *input.Longitude > 180 || *input.Latitude < -90 || *input.Latitude > 90 {
			utils.RespondWithError(w, http.StatusBadRequest, "Coordinates out of range")
			return
		}
		set["location"] = models.NewGeoPoint(*input.Longitude, *input.Latitude)
	}
	if input.Features != nil {
		set["features"] = input.Features
	}
	if input.PriceTier != 0 {
		set["price_tier"] = input.PriceTier
	}
	if input.Tags != "" {
		set["tags"] = utils.SplitTags(input.Tags)
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	// Approval is an admin decision.
	if input.Approved != nil && isAdmin(r) {
		set["approved"] = *input.Approved
	}

	_, err := db.PlacesCollection.UpdateOne(r.Context(),
		bson.M{"placeid": place.PlaceID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update place")
		return
	}

	invalidateCache()
	go mq.Emit(r.Context(), "place-edited", models.Index{
		EntityType: "place", EntityId: place.PlaceID, Method: "PUT",
	})

	utils.SendResponse(w, http.StatusOK, nil, "Place updated", nil)
}

// DELETE /api/places/:placeid — no cascade: reviews referencing the place
// stay behind and are flagged dangling on read.
func DeletePlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	placeID := ps.ByName("placeid")

	place, ok := loadOwnedPlace(w, r, placeID, userID)
	if !ok {
		return
	}

	if _, err := db.PlacesCollection.DeleteOne(r.Context(), bson.M{"placeid": place.PlaceID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete place")
		return
	}

	invalidateCache()
	userdata.DelUserData("place", place.PlaceID, place.CreatedBy)
	go mq.Emit(r.Context(), "place-deleted", models.Index{
		EntityType: "place", EntityId: place.PlaceID, Method: "DELETE",
	})

	utils.SendResponse(w, http.StatusOK, nil, "Place deleted", nil)
}

func loadOwnedPlace(w http.ResponseWriter, r *http.Request, placeID, userID string) (models.Place, bool) {
	var place models.Place
	err := db.PlacesCollection.FindOne(r.Context(), bson.M{"placeid": placeID}).Decode(&place)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return place, false
	}
	if place.CreatedBy != userID && !isAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return place, false
	}
	return place, true
}

func isAdmin(r *http.Request) bool {
	return utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin)
}

func invalidateCache() {
	_ = rdx.RdxDel(placesCacheKey)
}
