package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"wayfare/db"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/userdata"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/place/:placeid/reviews
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placeID := ps.ByName("placeid")

	skip, limit := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "created_at", Value: -1}}, map[string]bson.D{
		"rating": {{Key: "rating", Value: -1}},
		"oldest": {{Key: "created_at", Value: 1}},
		"newest": {{Key: "created_at", Value: -1}},
	})

	filter := bson.M{"placeid": placeID}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	markDangling(ctx, reviews)
	utils.SendResponse(w, http.StatusOK, reviews, "", nil)
}

// GET /api/reviews/:reviewid
func GetReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID := ps.ByName("reviewid")

	var review models.Review
	err := db.ReviewsCollection.FindOne(r.Context(), bson.M{"reviewid": reviewID}).Decode(&review)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	// Places are deleted without cascading, so a review may outlive its
	// place. Surface that to the client instead of hiding the review.
	count, err := db.PlacesCollection.CountDocuments(r.Context(), bson.M{"placeid": review.PlaceID})
	if err == nil && count == 0 {
		review.Dangling = true
	}

	utils.SendResponse(w, http.StatusOK, review, "", nil)
}

// GET /api/user/reviews
func GetMyReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reviews, err := utils.FindAndDecode[models.Review](r.Context(), db.ReviewsCollection, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	markDangling(r.Context(), reviews)
	utils.SendResponse(w, http.StatusOK, reviews, "", nil)
}

// POST /api/reviews/add
func AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		PlaceID string   `json:"place"`
		Rating  int      `json:"rating"`
		Comment string   `json:"review"`
		PlanID  string   `json:"plan,omitempty"`
		Images  []string `json:"images,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if msg, ok := validateReviewInput(input.Rating, input.Comment); !ok {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()

	placeCount, err := db.PlacesCollection.CountDocuments(ctx, bson.M{"placeid": input.PlaceID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check place")
		return
	}
	if placeCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	existing, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{
		"userid":  userID,
		"placeid": input.PlaceID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing review")
		return
	}
	if existing > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this place")
		return
	}

	now := time.Now()
	review := models.Review{
		ReviewID:  utils.GenerateRandomString(16),
		UserID:    userID,
		PlaceID:   input.PlaceID,
		PlanID:    input.PlanID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Images:    input.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The insert and the aggregate rewrite commit together, so two racing
	// reviewers cannot leave the place summary reflecting only one of them.
	err = withTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := db.ReviewsCollection.InsertOne(sc, review); err != nil {
			return err
		}
		return RecalcPlaceRating(sc, review.PlaceID)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this place")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	userdata.SetUserData("review", review.ReviewID, userID, "place", review.PlaceID)
	go mq.Emit(ctx, "review-added", models.Index{
		EntityType: "review", EntityId: review.ReviewID, Method: "POST",
		ItemType: "place", ItemId: review.PlaceID,
	})

	utils.SendResponse(w, http.StatusCreated, review, "Review added", nil)
}

// PUT /api/reviews/:reviewid
func EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	reviewID := ps.ByName("reviewid")

	var review models.Review
	err := db.ReviewsCollection.FindOne(r.Context(), bson.M{"reviewid": reviewID}).Decode(&review)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	if review.UserID != userID && !isAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var input struct {
		Rating  *int      `json:"rating,omitempty"`
		Comment *string   `json:"review,omitempty"`
		Images  *[]string `json:"images,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}
		set["rating"] = *input.Rating
	}
	if input.Comment != nil {
		if utf8.RuneCountInString(*input.Comment) > models.MaxReviewLength {
			utils.RespondWithError(w, http.StatusBadRequest, "Review text is too long")
			return
		}
		set["comment"] = *input.Comment
	}
	if input.Images != nil {
		set["images"] = *input.Images
	}

	err = withTxn(r.Context(), func(sc mongo.SessionContext) error {
		if _, err := db.ReviewsCollection.UpdateOne(sc,
			bson.M{"reviewid": reviewID}, bson.M{"$set": set}); err != nil {
			return err
		}
		return RecalcPlaceRating(sc, review.PlaceID)
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	go mq.Emit(r.Context(), "review-edited", models.Index{
		EntityType: "review", EntityId: reviewID, Method: "PUT",
		ItemType: "place", ItemId: review.PlaceID,
	})

	utils.SendResponse(w, http.StatusOK, nil, "Review updated", nil)
}

// DELETE /api/reviews/:reviewid
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	reviewID := ps.ByName("reviewid")

	var review models.Review
	err := db.ReviewsCollection.FindOne(r.Context(), bson.M{"reviewid": reviewID}).Decode(&review)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	if review.UserID != userID && !isAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	err = withTxn(r.Context(), func(sc mongo.SessionContext) error {
		if _, err := db.ReviewsCollection.DeleteOne(sc, bson.M{"reviewid": reviewID}); err != nil {
			return err
		}
		return RecalcPlaceRating(sc, review.PlaceID)
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	userdata.DelUserData("review", reviewID, review.UserID)
	go mq.Emit(r.Context(), "review-deleted", models.Index{
		EntityType: "review", EntityId: reviewID, Method: "DELETE",
		ItemType: "place", ItemId: review.PlaceID,
	})

	utils.SendResponse(w, http.StatusOK, nil, "Review deleted", nil)
}

// markDangling flags reviews whose place no longer exists. Places are
// deleted without cascading, so a review can outlive its place.
func markDangling(ctx context.Context, reviews []models.Review) {
	if len(reviews) == 0 {
		return
	}

	ids := make([]string, 0, len(reviews))
	seen := make(map[string]bool, len(reviews))
	for _, rv := range reviews {
		if !seen[rv.PlaceID] {
			seen[rv.PlaceID] = true
			ids = append(ids, rv.PlaceID)
		}
	}

	places, err := utils.FindAndDecode[models.Place](ctx, db.PlacesCollection,
		bson.M{"placeid": bson.M{"$in": ids}})
	if err != nil {
		return
	}

	alive := make(map[string]bool, len(places))
	for _, p := range places {
		alive[p.PlaceID] = true
	}
	flagMissingPlaces(reviews, alive)
}

func flagMissingPlaces(reviews []models.Review, alive map[string]bool) {
	for i := range reviews {
		if !alive[reviews[i].PlaceID] {
			reviews[i].Dangling = true
		}
	}
}

func validateReviewInput(rating int, comment string) (string, bool) {
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5", false
	}
	if comment == "" {
		return "Review text is required", false
	}
	if utf8.RuneCountInString(comment) > models.MaxReviewLength {
		return "Review text is too long", false
	}
	return "", true
}

// withTxn runs fn inside a Mongo session transaction.
func withTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	sess, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func isAdmin(r *http.Request) bool {
	return utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin)
}
