package chatbot

import (
	"encoding/json"
	"fmt"
	"net/http"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxCandidates = 200
const maxResults = 10

// Recommend serves POST /api/chat/recommend: body {message} -> ranked
// place list, produced by the same engine the websocket widget uses.
func Recommend(engine *Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "A message is required")
			return
		}

		opts := options.Find().SetLimit(maxCandidates).
			SetSort(bson.D{{Key: "averageRating", Value: -1}})
		candidates, err := utils.FindAndDecode[models.Place](r.Context(), db.PlacesCollection,
			bson.M{"active": true}, opts)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load places")
			return
		}

		ranked := engine.Recommend(r.Context(), input.Message, candidates)
		if len(ranked) > maxResults {
			ranked = ranked[:maxResults]
		}

		utils.SendResponse(w, http.StatusOK, map[string]any{
			"reply":  replyFor(ranked),
			"places": ranked,
		}, "", nil)
	}
}

func replyFor(places []models.Place) string {
	if len(places) == 0 {
		return "I couldn't find any places yet. Try again once some places are listed."
	}
	return fmt.Sprintf("Here are %d places you might like. %s looks like a great start.",
		len(places), places[0].Name)
}
