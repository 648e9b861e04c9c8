package userdata

import (
	"context"
	"log"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UserData records that a user authored an entity, keyed by entity type.
type UserData struct {
	UserID     string `json:"userid" bson:"userid"`
	EntityType string `json:"entity_type" bson:"entity_type"`
	EntityID   string `json:"entity_id" bson:"entity_id"`
	ItemType   string `json:"item_type,omitempty" bson:"item_type,omitempty"`
	ItemID     string `json:"item_id,omitempty" bson:"item_id,omitempty"`
	CreatedAt  string `json:"created_at" bson:"created_at"`
}

var ValidEntityTypes = map[string]bool{
	"place":  true,
	"review": true,
	"plan":   true,
}

func IsValidEntityType(entityType string) bool {
	return ValidEntityTypes[entityType]
}

func SetUserData(entityType, entityId, userId, itemType, itemId string) {
	content := UserData{
		UserID:     userId,
		EntityType: entityType,
		EntityID:   entityId,
		ItemType:   itemType,
		ItemID:     itemId,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if _, err := db.UserDataCollection.InsertOne(context.TODO(), content); err != nil {
		log.Printf("Error inserting user data: %v", err)
	}
}

func DelUserData(entityType, entityId, userId string) {
	_, err := db.UserDataCollection.DeleteOne(context.TODO(),
		bson.M{"entity_id": entityId, "entity_type": entityType, "userid": userId})
	if err != nil {
		log.Printf("Error deleting user data: %v", err)
	}
}

// GET /api/user/data?entity_type=review — entities authored by the caller.
func GetUserProfileData(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entityType := r.URL.Query().Get("entity_type")
	if entityType == "" {
		http.Error(w, "Entity type is required", http.StatusBadRequest)
		return
	}
	if !IsValidEntityType(entityType) {
		http.Error(w, "Invalid entity type", http.StatusBadRequest)
		return
	}

	filter := bson.M{"entity_type": entityType, "userid": userID}
	results, err := utils.FindAndDecode[UserData](r.Context(), db.UserDataCollection, filter)
	if err != nil {
		http.Error(w, "Failed to fetch user data", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}
